// Package voice defines the four SATB voice tags and their static,
// per-voice pitch-number ranges.
package voice

import "fmt"

// Name identifies one of the four vocal parts.
type Name string

const (
	Soprano Name = "S"
	Alto    Name = "A"
	Tenor   Name = "T"
	Bass    Name = "B"
)

// Order is the fixed iteration order used whenever the builder needs to walk
// voices deterministically or form unordered pairs exactly once.
var Order = []Name{Soprano, Alto, Tenor, Bass}

// Range is an inclusive pitch-number range.
type Range struct {
	Low, High int
}

// Contains reports whether n lies within the range, inclusive.
func (r Range) Contains(n int) bool { return n >= r.Low && n <= r.High }

// RangeTable maps each voice to its allowable pitch-number range. The zero
// value is not usable; construct one with DefaultRanges or a config loader.
type RangeTable map[Name]Range

// DefaultRanges returns the classical SATB ranges from spec.md §4.3:
// S ~ C4..A5, A ~ G3..D5, T ~ C3..G4, B ~ E2..C4.
func DefaultRanges() RangeTable {
	return RangeTable{
		Soprano: {Low: 60, High: 81}, // C4..A5
		Alto:    {Low: 55, High: 74}, // G3..D5
		Tenor:   {Low: 48, High: 67}, // C3..G4
		Bass:    {Low: 40, High: 60}, // E2..C4
	}
}

// Range looks up a voice's range, returning an error if the table doesn't
// name it.
func (rt RangeTable) Range(v Name) (Range, error) {
	r, ok := rt[v]
	if !ok {
		return Range{}, fmt.Errorf("voice: unknown voice %q", v)
	}
	return r, nil
}

// Var is the (voice, time) identifier of a CSP variable.
type Var struct {
	Voice Name
	Time  int
}

// String renders a Var the way variable identifiers are logged, e.g. "S@0".
func (v Var) String() string {
	return fmt.Sprintf("%s@%d", v.Voice, v.Time)
}
