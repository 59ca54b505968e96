// Package pitch implements the bidirectional conversion between letter-name
// pitches and integer pitch numbers used by the rest of the solver.
package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadPitchName is returned when a pitch name cannot be resolved to a
// pitch class: an unrecognized letter, or more than one accidental.
var ErrBadPitchName = errors.New("bad pitch name")

// letterOffsets gives the pitch class of each natural letter name.
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// sharpNames is the canonical sharp spelling for every pitch class 0..11.
var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ClassOf resolves a pitch name ("C", "F#", "Bb", "Cb", "E#", ...) to a pitch
// class in 0..11. A single letter optionally followed by a single
// accidental ('#' or 's' for sharp, 'b' for flat) is accepted; anything else
// is ErrBadPitchName.
func ClassOf(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrBadPitchName)
	}

	letter := byte(0)
	if name[0] >= 'a' && name[0] <= 'g' {
		letter = name[0] - 'a' + 'A'
	} else {
		letter = name[0]
	}
	base, ok := letterOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadPitchName, name)
	}

	rest := name[1:]
	switch {
	case rest == "":
		return base, nil
	case rest == "#" || rest == "s":
		return (base + 1) % 12, nil
	case rest == "b":
		return (base + 12 - 1) % 12, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadPitchName, name)
	}
}

// ClassName returns the canonical sharp spelling of a pitch class.
func ClassName(class int) string {
	class = ((class % 12) + 12) % 12
	return sharpNames[class]
}

// NumberOf converts a (name, octave) pair to a pitch number, where octave is
// MIDI-style: C4 = 60, so NumberOf("C", -1) == 0. Cb and B# shift the
// effective octave by one semitone's worth of wraparound (Cb is the octave
// below its letter's natural spelling, B# the octave above).
func NumberOf(name string, octave int) (int, error) {
	name = strings.TrimSpace(name)
	class, err := ClassOf(name)
	if err != nil {
		return 0, err
	}

	letter := name[0]
	if letter >= 'a' && letter <= 'g' {
		letter = letter - 'a' + 'A'
	}
	accidental := name[1:]

	n := (octave+1)*12 + class
	if letter == 'C' && accidental == "b" {
		n -= 12
	}
	if letter == 'B' && (accidental == "#" || accidental == "s") {
		n += 12
	}
	return n, nil
}

// Name returns the canonical (sharp-spelled) letter name and MIDI-style
// octave for a pitch number.
func Name(n int) (string, int) {
	class := ((n % 12) + 12) % 12
	octave := n/12 - 1
	if n < 0 && n%12 != 0 {
		octave--
	}
	return ClassName(class), octave
}

// Class reduces a pitch number to its pitch class, 0..11.
func Class(n int) int {
	return ((n % 12) + 12) % 12
}
