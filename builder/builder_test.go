package builder

import (
	"context"
	"testing"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/voice"
)

func mustChord(t *testing.T, root int, mods []chord.Modifier, time int) *chord.Chord {
	t.Helper()
	c, err := chord.New(root, mods, time)
	if err != nil {
		t.Fatalf("chord.New failed: %v", err)
	}
	return c
}

func firstSolution(p *Problem) (csp.Assignment, bool) {
	for sol := range p.Solve(context.Background()) {
		return sol, true
	}
	return nil, false
}

// S1: C major, one chord — at least one solution, every pitch class in
// {0,4,7}, and no voice crossing.
func TestS1CMajorSingleChord(t *testing.T) {
	c := mustChord(t, 0, []chord.Modifier{chord.ModMajor}, 0)
	p, err := Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	sol, ok := firstSolution(p)
	if !ok {
		t.Fatal("expected at least one solution")
	}
	allowed := map[int]bool{0: true, 4: true, 7: true}
	s := sol[csp.VarID(voice.Var{Voice: voice.Soprano, Time: 0}.String())]
	a := sol[csp.VarID(voice.Var{Voice: voice.Alto, Time: 0}.String())]
	te := sol[csp.VarID(voice.Var{Voice: voice.Tenor, Time: 0}.String())]
	b := sol[csp.VarID(voice.Var{Voice: voice.Bass, Time: 0}.String())]
	for _, pitch := range []int{s, a, te, b} {
		if !allowed[((pitch%12)+12)%12] {
			t.Errorf("pitch %d not in C major chord tones", pitch)
		}
	}
	if !(s >= a && a >= te && te >= b) {
		t.Errorf("voices crossed: s=%d a=%d t=%d b=%d", s, a, te, b)
	}
}

// S3: bass specified pitch class must be honored in every solution.
func TestS3BassSpecified(t *testing.T) {
	c := mustChord(t, 0, []chord.Modifier{chord.ModMajor}, 0)
	c.SetBass(4) // E
	p, err := Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for sol := range p.Solve(context.Background()) {
		count++
		b := sol[csp.VarID(voice.Var{Voice: voice.Bass, Time: 0}.String())]
		if ((b % 12) + 12) % 12 != 4 {
			t.Errorf("bass pitch class = %d, want 4", ((b % 12) + 12) % 12)
		}
		if count > 20 {
			break
		}
	}
	if count == 0 {
		t.Fatal("expected at least one solution")
	}
}

// S6: an infeasible bass note (pitch class not in chord tones) yields an
// empty stream, not an error.
func TestS6InfeasibleBass(t *testing.T) {
	c := mustChord(t, 0, []chord.Modifier{chord.ModMajor}, 0) // C major tones {0,4,7}
	c.SetBass(2)                                              // D is not a chord tone
	p, err := Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := firstSolution(p); ok {
		t.Error("expected no solutions for infeasible bass note")
	}
}

// S5: fully diminished resolution — the voice on pc=11 (B) must resolve up
// by semitone to pc=0 (C).
func TestS5FullyDiminishedResolution(t *testing.T) {
	bdim7 := mustChord(t, 11, []chord.Modifier{chord.ModDim7}, 0)
	cmaj := mustChord(t, 0, []chord.Modifier{chord.ModMajor}, 1)
	p, err := Build([]*chord.Chord{bdim7, cmaj}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	sol, ok := firstSolution(p)
	if !ok {
		t.Fatal("expected at least one solution")
	}
	for _, v := range voice.Order {
		cur := sol[csp.VarID(voice.Var{Voice: v, Time: 0}.String())]
		if ((cur % 12) + 12) % 12 == 11 {
			next := sol[csp.VarID(voice.Var{Voice: v, Time: 1}.String())]
			if next-cur != 1 {
				t.Errorf("voice %s on B did not resolve up by semitone: %d -> %d", v, cur, next)
			}
		}
	}
}

func TestFixedNoteOverridesDomain(t *testing.T) {
	c := mustChord(t, 0, []chord.Modifier{chord.ModMajor}, 0)
	fixed := []FixedNote{{Voice: voice.Soprano, Time: 0, Pitch: 72}}
	p, err := Build([]*chord.Chord{c}, fixed, nil)
	if err != nil {
		t.Fatal(err)
	}
	sol, ok := firstSolution(p)
	if !ok {
		t.Fatal("expected a solution")
	}
	if got := sol[csp.VarID(voice.Var{Voice: voice.Soprano, Time: 0}.String())]; got != 72 {
		t.Errorf("fixed soprano pitch = %d, want 72", got)
	}
}
