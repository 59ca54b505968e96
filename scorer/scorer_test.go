package scorer

import (
	"testing"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/voice"
)

func TestSmoothnessSumsMotion(t *testing.T) {
	c0, _ := chord.New(0, []chord.Modifier{chord.ModMajor}, 0)
	c1, _ := chord.New(7, []chord.Modifier{chord.Mod7}, 1)
	chords := []*chord.Chord{c0, c1}

	a := csp.Assignment{
		varID(voice.Soprano, 0): 72, varID(voice.Soprano, 1): 71,
		varID(voice.Bass, 0): 48, varID(voice.Bass, 1): 55,
	}
	got := Smoothness.Score(a, chords)
	want := float64(1 + 7)
	if got != want {
		t.Errorf("Smoothness score = %v, want %v", got, want)
	}
}

func TestFuncAdapter(t *testing.T) {
	var s Scorer = Func(func(csp.Assignment, []*chord.Chord) float64 { return 42 })
	if s.Score(nil, nil) != 42 {
		t.Error("Func adapter did not forward call")
	}
}
