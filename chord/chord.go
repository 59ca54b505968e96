// Package chord models a chord symbol (root, modifiers, optional bass and
// harmonic role) and derives the pitch-class set that a harmonization must
// realize.
package chord

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fourvoices/pitch"
)

// ErrBadChordSpec is returned for an empty root, an unrecognized modifier
// token, or any other malformed chord description.
var ErrBadChordSpec = errors.New("bad chord spec")

// Role is a harmonic function tag.
type Role string

const (
	RoleNone         Role = ""
	RoleTonic        Role = "TONIC"
	RoleSubdominant  Role = "SUBDOMINANT"
	RoleDominant     Role = "DOMINANT"
)

// Modifier is a canonical token from the closed vocabulary in spec.md §6.
type Modifier string

const (
	ModMajor    Modifier = "maj"
	ModMinor    Modifier = "min"
	ModMaj7     Modifier = "maj7"
	ModMin7     Modifier = "min7"
	Mod7        Modifier = "7"
	ModHalfDim  Modifier = "half-dim"
	ModDim      Modifier = "dim"
	ModDim7     Modifier = "dim7"
)

// synonyms maps recognized spellings (case-insensitive) to canonical tokens.
var synonyms = map[string]Modifier{
	"maj":      ModMajor,
	"major":    ModMajor,
	"m":        ModMinor,
	"min":      ModMinor,
	"minor":    ModMinor,
	"maj7":     ModMaj7,
	"min7":     ModMin7,
	"m7":       ModMin7,
	"7":        Mod7,
	"dom7":     Mod7,
	"half-dim": ModHalfDim,
	"halfdim":  ModHalfDim,
	"m7b5":     ModHalfDim,
	"ø":        ModHalfDim,
	"dim":      ModDim,
	"o":        ModDim,
	"dim7":     ModDim7,
	"o7":       ModDim7,
}

// NormalizeModifier resolves a raw modifier token to its canonical form
// using the built-in synonym table only.
func NormalizeModifier(raw string) (Modifier, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	mod, ok := synonyms[key]
	if !ok {
		return "", fmt.Errorf("%w: unrecognized modifier %q", ErrBadChordSpec, raw)
	}
	return mod, nil
}

// ResolveModifier resolves a raw modifier token to its canonical form,
// first checking aliases (a repertoire's extra synonym -> canonical-token
// map, e.g. "funk7" -> "7") before falling back to the built-in synonym
// table. A nil or empty aliases map behaves exactly like NormalizeModifier.
func ResolveModifier(raw string, aliases map[string]string) (Modifier, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canon, ok := aliases[key]; ok {
		return NormalizeModifier(canon)
	}
	return NormalizeModifier(raw)
}

// Chord is a chord symbol at a discrete time step.
type Chord struct {
	Root      int      // pitch class 0..11
	Modifiers []Modifier
	Time      int
	HasBass   bool
	BassNote  int // pitch class, valid only if HasBass
	Role      Role
	RoleLabel string // raw Roman-numeral / role text, e.g. "V", "ii", "I"

	chordTones map[int]bool
	third      int
	fifth      int
	seventh    int
	hasSeventh bool
	isDim      bool
	isDimFull  bool
	isDimHalf  bool
}

// New builds a Chord, applying modifiers left-to-right to the initial major
// triad as described in spec.md §3, and normalizing dim+7 to dim7.
func New(root int, mods []Modifier, time int) (*Chord, error) {
	if root < 0 || root > 11 {
		return nil, fmt.Errorf("%w: root pitch class %d out of range", ErrBadChordSpec, root)
	}

	normalized := normalizeDimSeven(mods)

	c := &Chord{Root: root, Modifiers: normalized, Time: time}

	third, fifth := 4, 7
	for _, m := range normalized {
		switch m {
		case ModMajor:
			third, fifth = 4, 7
		case ModMinor:
			third = 3
		case ModMaj7:
			c.hasSeventh, c.seventh = true, (root+11)%12
		case ModMin7:
			third = 3
			c.hasSeventh, c.seventh = true, (root+10)%12
		case Mod7:
			c.hasSeventh, c.seventh = true, (root+10)%12
		case ModHalfDim:
			third, fifth = 3, 6
			c.hasSeventh, c.seventh = true, (root+10)%12
			c.isDim, c.isDimHalf = true, true
		case ModDim:
			third, fifth = 3, 6
			c.isDim = true
		case ModDim7:
			third, fifth = 3, 6
			c.hasSeventh, c.seventh = true, (root+9)%12
			c.isDim, c.isDimFull = true, true
		default:
			return nil, fmt.Errorf("%w: unrecognized modifier %q", ErrBadChordSpec, m)
		}
	}

	c.third = (root + third) % 12
	c.fifth = (root + fifth) % 12

	set := map[int]bool{root: true, c.third: true, c.fifth: true}
	if c.hasSeventh {
		set[c.seventh] = true
	}
	c.chordTones = set

	return c, nil
}

// normalizeDimSeven collapses a dim + 7 combination into dim7, per spec.md §3.
func normalizeDimSeven(mods []Modifier) []Modifier {
	hasDim, has7 := false, false
	for _, m := range mods {
		if m == ModDim {
			hasDim = true
		}
		if m == Mod7 {
			has7 = true
		}
	}
	if !hasDim || !has7 {
		return mods
	}
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if m == ModDim || m == Mod7 {
			continue
		}
		out = append(out, m)
	}
	return append(out, ModDim7)
}

// SetBass records the optional bass note (pitch class) of the chord.
func (c *Chord) SetBass(pc int) {
	c.HasBass = true
	c.BassNote = pc
}

// SetRole records the chord's harmonic function, either from a tag or from a
// Roman-numeral string whose leading character determines dominance.
func (c *Chord) SetRole(role Role, label string) {
	c.Role = role
	c.RoleLabel = label
}

// RootPitchClass returns the chord's root pitch class.
func (c *Chord) RootPitchClass() int { return c.Root }

// BassPitchClass returns the bass pitch class and whether one was specified.
func (c *Chord) BassPitchClass() (int, bool) { return c.BassNote, c.HasBass }

// Third returns the chord's third as a pitch class.
func (c *Chord) Third() int { return c.third }

// Fifth returns the chord's fifth as a pitch class.
func (c *Chord) Fifth() int { return c.fifth }

// Seventh returns the chord's seventh pitch class and whether one exists.
func (c *Chord) Seventh() (int, bool) { return c.seventh, c.hasSeventh }

// ChordTones returns the derived set of pitch classes, sorted for
// deterministic iteration.
func (c *Chord) ChordTones() []int {
	out := make([]int, 0, len(c.chordTones))
	for pc := range c.chordTones {
		out = append(out, pc)
	}
	sort.Ints(out)
	return out
}

// HasChordTone reports whether pc belongs to the chord's tone set.
func (c *Chord) HasChordTone(pc int) bool {
	return c.chordTones[pitch.Class(pc)]
}

// IsDominant reports whether the chord functions as a dominant: either its
// Role says so, or its RoleLabel starts with 'V' (major or uppercase-first
// Roman numeral convention for the dominant degree).
func (c *Chord) IsDominant() bool {
	if c.Role == RoleDominant {
		return true
	}
	return strings.HasPrefix(c.RoleLabel, "V")
}

// IsDim reports whether the chord is any diminished variant (half or full).
func (c *Chord) IsDim() bool { return c.isDim }

// IsDimFull reports whether the chord is fully diminished (dim7).
func (c *Chord) IsDimFull() bool { return c.isDimFull }

// IsDimHalf reports whether the chord is half-diminished.
func (c *Chord) IsDimHalf() bool { return c.isDimHalf }

// String renders the chord the way the problem file would describe it,
// useful for diagnostics and CLI solution printing.
func (c *Chord) String() string {
	parts := make([]string, len(c.Modifiers))
	for i, m := range c.Modifiers {
		parts[i] = string(m)
	}
	s := pitch.ClassName(c.Root)
	if len(parts) > 0 {
		s += " " + strings.Join(parts, " ")
	}
	return s
}
