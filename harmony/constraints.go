// Package harmony is the catalogue of voice-leading constraints from
// spec.md §4.5, expressed as csp.Constraint values over (voice, time)
// variables. Every constructor here follows the same shape: look up the
// variables it needs, abstain (return true) if any of them is still
// unbound, and otherwise evaluate the classical voice-leading rule.
package harmony

import (
	"fmt"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/voice"
)

func id(v voice.Name, t int) csp.VarID {
	return csp.VarID(voice.Var{Voice: v, Time: t}.String())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func interval(x, y int) int { return abs(x - y) }

func pc(n int) int { return ((n % 12) + 12) % 12 }

// bind looks up a set of variables in an assignment, reporting ok=false if
// any is unbound.
func bind(a csp.Assignment, ids ...csp.VarID) ([]int, bool) {
	out := make([]int, len(ids))
	for i, v := range ids {
		n, present := a[v]
		if !present {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// SpecifyChord requires the four voices at t to realize the chord: every
// voice's pitch class is a chord tone, every chord tone appears at least
// once, and the seventh (if the chord has one) appears exactly once.
func SpecifyChord(c *chord.Chord, t int) csp.Constraint {
	ids := []csp.VarID{id(voice.Soprano, t), id(voice.Alto, t), id(voice.Tenor, t), id(voice.Bass, t)}
	return csp.Constraint{
		Label: fmt.Sprintf("SpecifyChord@%d", t),
		Vars:  ids,
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, ids...)
			if !ok {
				return true
			}
			present := make(map[int]int, 4)
			for _, v := range vals {
				class := pc(v)
				if !c.HasChordTone(class) {
					return false
				}
				present[class]++
			}
			for _, tone := range c.ChordTones() {
				if present[tone] == 0 {
					return false
				}
			}
			if seventh, has := c.Seventh(); has && present[seventh] != 1 {
				return false
			}
			return true
		},
	}
}

// SetBass pins the bass voice's pitch class to the chord's specified bass
// note, when one is given.
func SetBass(c *chord.Chord, t int) csp.Constraint {
	b := id(voice.Bass, t)
	bass, has := c.BassPitchClass()
	return csp.Constraint{
		Label: fmt.Sprintf("SetBass@%d", t),
		Vars:  []csp.VarID{b},
		Check: func(a csp.Assignment) bool {
			if !has {
				return true
			}
			v, ok := bind(a, b)
			if !ok {
				return true
			}
			return pc(v[0]) == bass
		},
	}
}

// Spacing forbids two adjacent upper voices from spreading more than an
// octave apart. Applied to S-A and A-T; T-B is classically allowed to
// exceed an octave and so is never given this constraint.
func Spacing(upper, lower voice.Name, t int) csp.Constraint {
	u, l := id(upper, t), id(lower, t)
	return csp.Constraint{
		Label: fmt.Sprintf("Spacing(%s,%s)@%d", upper, lower, t),
		Vars:  []csp.VarID{u, l},
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, u, l)
			if !ok {
				return true
			}
			return interval(vals[0], vals[1]) <= 12
		},
	}
}

// Crossover forbids voice crossing: S >= A >= T >= B.
func Crossover(t int) csp.Constraint {
	ids := []csp.VarID{id(voice.Soprano, t), id(voice.Alto, t), id(voice.Tenor, t), id(voice.Bass, t)}
	return csp.Constraint{
		Label: fmt.Sprintf("Crossover@%d", t),
		Vars:  ids,
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, ids...)
			if !ok {
				return true
			}
			s, al, te, b := vals[0], vals[1], vals[2], vals[3]
			return s >= al && al >= te && te >= b
		},
	}
}

// Leap forbids a voice from moving by more than an octave between adjacent
// time steps.
func Leap(v voice.Name, t int) csp.Constraint {
	x, x2 := id(v, t), id(v, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("Leap(%s)@%d", v, t),
		Vars:  []csp.VarID{x, x2},
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, x, x2)
			if !ok {
				return true
			}
			return interval(vals[0], vals[1]) <= 12
		},
	}
}

// TemporalOverlap forbids the upper voice of an adjacent pair from moving to
// or below where the lower voice previously was, and vice versa, whenever
// that voice actually moves.
func TemporalOverlap(upper, lower voice.Name, t int) csp.Constraint {
	u, l, u2, l2 := id(upper, t), id(lower, t), id(upper, t+1), id(lower, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("TemporalOverlap(%s,%s)@%d", upper, lower, t),
		Vars:  []csp.VarID{u, l, u2, l2},
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, u, l, u2, l2)
			if !ok {
				return true
			}
			U, L, U2, L2 := vals[0], vals[1], vals[2], vals[3]
			if U2 != U && U2 <= L {
				return false
			}
			if L2 != L && L2 >= U {
				return false
			}
			return true
		},
	}
}

// ParallelFifth forbids two distinct voices from moving in parallel into
// another perfect fifth. A fifth held static (no motion in either voice) is
// permitted.
func ParallelFifth(x, y voice.Name, t int) csp.Constraint {
	return parallelPerfect(x, y, t, 7, "ParallelFifth")
}

// ParallelOctave forbids parallel motion into another octave/unison.
func ParallelOctave(x, y voice.Name, t int) csp.Constraint {
	return parallelPerfect(x, y, t, 0, "ParallelOctave")
}

func parallelPerfect(x, y voice.Name, t, intervalClass int, label string) csp.Constraint {
	xv, yv, x2, y2 := id(x, t), id(y, t), id(x, t+1), id(y, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("%s(%s,%s)@%d", label, x, y, t),
		Vars:  []csp.VarID{xv, yv, x2, y2},
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, xv, yv, x2, y2)
			if !ok {
				return true
			}
			X, Y, X2, Y2 := vals[0], vals[1], vals[2], vals[3]
			if X == X2 && Y == Y2 {
				return true // interval held static, permitted
			}
			return !(interval(X, Y)%12 == intervalClass && interval(X2, Y2)%12 == intervalClass)
		},
	}
}

// HiddenMotionOuter forbids the soprano and bass from moving in the same
// direction into a perfect fifth or octave while the soprano leaps. The "soprano-stepwise"
// exemption: stepwise soprano motion (at most a whole step) is allowed
// regardless of the resulting interval; only a soprano leap combined with
// same-direction bass motion into a fifth or octave is forbidden.
func HiddenMotionOuter(t int) csp.Constraint {
	s, b, s2, b2 := id(voice.Soprano, t), id(voice.Bass, t), id(voice.Soprano, t+1), id(voice.Bass, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("HiddenMotionOuter@%d", t),
		Vars:  []csp.VarID{s, b, s2, b2},
		Check: func(a csp.Assignment) bool {
			vals, ok := bind(a, s, b, s2, b2)
			if !ok {
				return true
			}
			S, B, S2, B2 := vals[0], vals[1], vals[2], vals[3]
			sDelta, bDelta := S2-S, B2-B
			if sDelta == 0 || bDelta == 0 {
				return true // no shared direction to speak of
			}
			sameDirection := (sDelta > 0) == (bDelta > 0)
			if !sameDirection {
				return true
			}
			sLeap := abs(sDelta) > 2
			if !sLeap {
				return true // stepwise soprano motion is always exempt
			}
			intervalClass := interval(S2, B2) % 12
			if intervalClass == 0 || intervalClass == 7 {
				return false
			}
			return true
		},
	}
}

// Seventh requires the voice sounding a chord's seventh to resolve it
// downward by step (a half or whole step) at the next time.
func Seventh(c *chord.Chord, v voice.Name, t int) csp.Constraint {
	seventh, has := c.Seventh()
	x, x2 := id(v, t), id(v, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("Seventh(%s)@%d", v, t),
		Vars:  []csp.VarID{x, x2},
		Check: func(a csp.Assignment) bool {
			if !has {
				return true
			}
			vals, ok := bind(a, x, x2)
			if !ok {
				return true
			}
			X, X2 := vals[0], vals[1]
			if pc(X) != seventh {
				return true
			}
			delta := X - X2
			return delta == 1 || delta == 2
		},
	}
}

// LeadingTone requires a dominant chord's leading tone (its major third) to
// resolve up by semitone in an outer voice, or up by semitone/down by third
// in an inner voice.
func LeadingTone(c *chord.Chord, v voice.Name, t int) csp.Constraint {
	x, x2 := id(v, t), id(v, t+1)
	outer := v == voice.Soprano || v == voice.Bass
	return csp.Constraint{
		Label: fmt.Sprintf("LeadingTone(%s)@%d", v, t),
		Vars:  []csp.VarID{x, x2},
		Check: func(a csp.Assignment) bool {
			if !c.IsDominant() {
				return true
			}
			vals, ok := bind(a, x, x2)
			if !ok {
				return true
			}
			X, X2 := vals[0], vals[1]
			if pc(X) != c.Third() {
				return true
			}
			delta := X2 - X
			if outer {
				return delta == 1
			}
			return delta == 1 || delta == -3 || delta == -4
		},
	}
}

// DiminishedFifth requires a diminished chord's fifth to resolve inward by
// semitone.
func DiminishedFifth(c *chord.Chord, v voice.Name, t int) csp.Constraint {
	x, x2 := id(v, t), id(v, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("DiminishedFifth(%s)@%d", v, t),
		Vars:  []csp.VarID{x, x2},
		Check: func(a csp.Assignment) bool {
			if !c.IsDim() {
				return true
			}
			vals, ok := bind(a, x, x2)
			if !ok {
				return true
			}
			X, X2 := vals[0], vals[1]
			if pc(X) != c.Fifth() {
				return true
			}
			return X-X2 == 1
		},
	}
}

// FullDiminishedRoot requires a fully-diminished chord's root to move
// upward by a semitone or whole tone.
func FullDiminishedRoot(c *chord.Chord, v voice.Name, t int) csp.Constraint {
	x, x2 := id(v, t), id(v, t+1)
	return csp.Constraint{
		Label: fmt.Sprintf("FullDiminishedRoot(%s)@%d", v, t),
		Vars:  []csp.VarID{x, x2},
		Check: func(a csp.Assignment) bool {
			if !c.IsDimFull() {
				return true
			}
			vals, ok := bind(a, x, x2)
			if !ok {
				return true
			}
			X, X2 := vals[0], vals[1]
			if pc(X) != c.RootPitchClass() {
				return true
			}
			delta := X2 - X
			return delta == 1 || delta == 2
		},
	}
}
