// Package scorer defines the pluggable grading hook the core exposes but
// never calls itself (spec.md §4.7): solution ranking is a collaborator's
// concern, not the CSP engine's.
package scorer

import (
	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/voice"
)

// Scorer grades a complete assignment against the chord sequence it
// realizes. Lower scores are conventionally "better", but the core imposes
// no ordering convention of its own — callers define what their score means.
type Scorer interface {
	Score(assignment csp.Assignment, chords []*chord.Chord) float64
}

// Func adapts a plain function to the Scorer interface, the same pattern as
// http.HandlerFunc.
type Func func(assignment csp.Assignment, chords []*chord.Chord) float64

// Score calls f.
func (f Func) Score(assignment csp.Assignment, chords []*chord.Chord) float64 {
	return f(assignment, chords)
}

// Smoothness is a reference Scorer: total absolute semitone motion summed
// across all four voices between adjacent time steps. Lower means smoother
// voice leading. It is a convenience default for callers that don't bring
// their own grader; the core never references it.
var Smoothness Func = func(assignment csp.Assignment, chords []*chord.Chord) float64 {
	total := 0
	for _, v := range voice.Order {
		for t := 0; t < len(chords)-1; t++ {
			cur, ok1 := assignment[varID(v, t)]
			next, ok2 := assignment[varID(v, t+1)]
			if !ok1 || !ok2 {
				continue
			}
			delta := cur - next
			if delta < 0 {
				delta = -delta
			}
			total += delta
		}
	}
	return float64(total)
}

func varID(v voice.Name, t int) csp.VarID {
	return csp.VarID(voice.Var{Voice: v, Time: t}.String())
}
