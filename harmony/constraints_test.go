package harmony

import (
	"testing"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/voice"
)

func asg(pairs ...any) csp.Assignment {
	a := make(csp.Assignment)
	for i := 0; i < len(pairs); i += 2 {
		a[pairs[i].(csp.VarID)] = pairs[i+1].(int)
	}
	return a
}

func TestSpecifyChordRequiresEveryTone(t *testing.T) {
	c, _ := chord.New(0, []chord.Modifier{chord.ModMajor}, 0) // C major {0,4,7}
	con := SpecifyChord(c, 0)

	ok := asg(
		id(voice.Soprano, 0), 72, // C
		id(voice.Alto, 0), 64, // E
		id(voice.Bass, 0), 48, // C
	)
	if !con.Check(ok) {
		t.Error("partial assignment should abstain (tenor unbound)")
	}

	complete := asg(
		id(voice.Soprano, 0), 72, // C
		id(voice.Alto, 0), 67, // G
		id(voice.Tenor, 0), 64, // E
		id(voice.Bass, 0), 48, // C
	)
	if !con.Check(complete) {
		t.Error("expected complete major triad with all tones present to satisfy SpecifyChord")
	}

	missingThird := asg(
		id(voice.Soprano, 0), 72,
		id(voice.Alto, 0), 67,
		id(voice.Tenor, 0), 67,
		id(voice.Bass, 0), 48,
	)
	if con.Check(missingThird) {
		t.Error("missing third should fail SpecifyChord")
	}
}

func TestCrossover(t *testing.T) {
	con := Crossover(0)
	good := asg(id(voice.Soprano, 0), 72, id(voice.Alto, 0), 67, id(voice.Tenor, 0), 64, id(voice.Bass, 0), 48)
	if !con.Check(good) {
		t.Error("non-crossing voicing should pass")
	}
	bad := asg(id(voice.Soprano, 0), 60, id(voice.Alto, 0), 67, id(voice.Tenor, 0), 64, id(voice.Bass, 0), 48)
	if con.Check(bad) {
		t.Error("soprano below alto should fail Crossover")
	}
}

func TestParallelFifthRejectsMotion(t *testing.T) {
	con := ParallelFifth(voice.Soprano, voice.Alto, 0)
	s, a := id(voice.Soprano, 0), id(voice.Alto, 0)
	s2, a2 := id(voice.Soprano, 1), id(voice.Alto, 1)

	moving := asg(s, 67, a, 60, s2, 69, a2, 62) // fifth -> fifth, both move up a step
	if con.Check(moving) {
		t.Error("parallel fifths in similar motion should be rejected")
	}

	static := asg(s, 67, a, 60, s2, 67, a2, 60)
	if !con.Check(static) {
		t.Error("a fifth held static should be permitted")
	}
}

func TestSeventhResolvesDown(t *testing.T) {
	c, _ := chord.New(7, []chord.Modifier{chord.Mod7}, 0) // G7, seventh = F (pc 5)
	con := Seventh(c, voice.Alto, 0)
	a0, a1 := id(voice.Alto, 0), id(voice.Alto, 1)

	good := asg(a0, 65, a1, 64) // F -> E, step down
	if !con.Check(good) {
		t.Error("seventh resolving down by step should pass")
	}
	bad := asg(a0, 65, a1, 67) // F -> G, resolves upward
	if con.Check(bad) {
		t.Error("seventh resolving upward should fail")
	}
}

func TestLeadingToneOuterMustRiseSemitone(t *testing.T) {
	c, _ := chord.New(7, []chord.Modifier{chord.Mod7}, 0)
	c.SetRole(chord.RoleNone, "V")
	con := LeadingTone(c, voice.Soprano, 0)
	s0, s1 := id(voice.Soprano, 0), id(voice.Soprano, 1)

	good := asg(s0, 71, s1, 72) // B -> C
	if !con.Check(good) {
		t.Error("leading tone in soprano should resolve up by semitone")
	}
	bad := asg(s0, 71, s1, 74)
	if con.Check(bad) {
		t.Error("leading tone resolving by more than a semitone in outer voice should fail")
	}
}

func TestHiddenMotionOuter(t *testing.T) {
	con := HiddenMotionOuter(0)
	s, b := id(voice.Soprano, 0), id(voice.Bass, 0)
	s2, b2 := id(voice.Soprano, 1), id(voice.Bass, 1)

	leapIntoOctave := asg(s, 60, b, 48, s2, 67, b2, 55) // both leap up a fifth into an octave
	if con.Check(leapIntoOctave) {
		t.Error("same-direction leap into an octave should be rejected")
	}

	stepwiseSoprano := asg(s, 60, b, 48, s2, 62, b2, 55) // soprano moves by step, exempt regardless of interval
	if !con.Check(stepwiseSoprano) {
		t.Error("stepwise soprano motion should be exempt even when it lands on a perfect interval")
	}

	oppositeDirection := asg(s, 60, b, 48, s2, 67, b2, 41)
	if !con.Check(oppositeDirection) {
		t.Error("contrary motion should never trigger HiddenMotionOuter")
	}

	leapIntoImperfect := asg(s, 60, b, 48, s2, 70, b2, 56) // same-direction leap into a non-perfect interval
	if !con.Check(leapIntoImperfect) {
		t.Error("a leap into a non-perfect interval should be permitted")
	}
}

func TestFullDiminishedRootResolution(t *testing.T) {
	c, _ := chord.New(11, []chord.Modifier{chord.ModDim7}, 0) // B dim7
	con := FullDiminishedRoot(c, voice.Tenor, 0)
	t0, t1 := id(voice.Tenor, 0), id(voice.Tenor, 1)

	good := asg(t0, 59, t1, 60) // B -> C
	if !con.Check(good) {
		t.Error("fully diminished root should resolve up by semitone or whole tone")
	}
	bad := asg(t0, 59, t1, 58)
	if con.Check(bad) {
		t.Error("downward resolution of diminished root should fail")
	}
}
