// Package builder turns a chord sequence into a fully wired csp.Engine:
// one variable per (voice, time), domains seeded from the chord's tone set
// intersected with the voice's range, and every constraint from the harmony
// catalogue relating same-time and adjacent-time variables.
package builder

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/harmony"
	"fourvoices/voice"
)

// FixedNote pins a single voice at a single time step to an exact pitch
// number, the "Figures" section of a problem file (spec.md §6).
type FixedNote struct {
	Voice voice.Name
	Time  int // matches the chord's original (pre-renumbering) Time
	Pitch int
}

// Problem bundles the wired engine together with the chord sequence it was
// built from (renumbered to contiguous 0..N-1 time steps), so a caller can
// print "time, chord, pitch" solution blocks without re-deriving anything.
type Problem struct {
	Engine *csp.Engine
	Chords []*chord.Chord
	Ranges voice.RangeTable
}

func varID(v voice.Name, t int) csp.VarID {
	return csp.VarID(voice.Var{Voice: v, Time: t}.String())
}

// Build instantiates variables and installs constraints for chords, per
// spec.md §4.6. chords need not be contiguous or pre-sorted; they are
// sorted by Time and renumbered to 0..N-1 for variable identifiers. A nil
// ranges table uses the classical SATB defaults.
func Build(chords []*chord.Chord, fixed []FixedNote, ranges voice.RangeTable) (*Problem, error) {
	if ranges == nil {
		ranges = voice.DefaultRanges()
	}

	sorted := append([]*chord.Chord(nil), chords...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	fixedByOriginalTime := make(map[int]map[voice.Name]int)
	for _, f := range fixed {
		if fixedByOriginalTime[f.Time] == nil {
			fixedByOriginalTime[f.Time] = make(map[voice.Name]int)
		}
		fixedByOriginalTime[f.Time][f.Voice] = f.Pitch
	}

	engine := csp.NewEngine()
	renumbered := make([]*chord.Chord, len(sorted))
	for t, c := range sorted {
		overrides := fixedByOriginalTime[c.Time]
		c.Time = t
		renumbered[t] = c

		for _, v := range voice.Order {
			r, err := ranges.Range(v)
			if err != nil {
				return nil, fmt.Errorf("builder: %w", err)
			}
			domain := domainFor(r, c)
			if overrides != nil {
				if pitch, ok := overrides[v]; ok {
					domain = []int{pitch}
				}
			}
			if err := engine.AddVariable(varID(v, t), domain); err != nil {
				return nil, fmt.Errorf("builder: %w", err)
			}
		}
	}

	for t, c := range renumbered {
		if err := installPerTime(engine, c, t); err != nil {
			return nil, err
		}
		if t < len(renumbered)-1 {
			if err := installBetweenTimes(engine, c, t); err != nil {
				return nil, err
			}
		}
	}

	return &Problem{Engine: engine, Chords: renumbered, Ranges: ranges}, nil
}

func domainFor(r voice.Range, c *chord.Chord) []int {
	var domain []int
	for n := r.Low; n <= r.High; n++ {
		if c.HasChordTone(n) {
			domain = append(domain, n)
		}
	}
	return domain
}

func installPerTime(e *csp.Engine, c *chord.Chord, t int) error {
	constraints := []csp.Constraint{
		harmony.SpecifyChord(c, t),
		harmony.SetBass(c, t),
		harmony.Spacing(voice.Soprano, voice.Alto, t),
		harmony.Spacing(voice.Alto, voice.Tenor, t),
		harmony.Crossover(t),
	}
	for _, con := range constraints {
		if err := e.AddConstraint(con); err != nil {
			return fmt.Errorf("builder: %w", err)
		}
	}
	return nil
}

func installBetweenTimes(e *csp.Engine, cur *chord.Chord, t int) error {
	var constraints []csp.Constraint

	for _, v := range voice.Order {
		constraints = append(constraints, harmony.Leap(v, t))
	}

	adjacent := [][2]voice.Name{{voice.Soprano, voice.Alto}, {voice.Alto, voice.Tenor}, {voice.Tenor, voice.Bass}}
	for _, pair := range adjacent {
		constraints = append(constraints, harmony.TemporalOverlap(pair[0], pair[1], t))
	}

	for i, x := range voice.Order {
		for _, y := range voice.Order[i+1:] {
			constraints = append(constraints, harmony.ParallelFifth(x, y, t))
			constraints = append(constraints, harmony.ParallelOctave(x, y, t))
		}
	}

	constraints = append(constraints, harmony.HiddenMotionOuter(t))

	if _, has := cur.Seventh(); has {
		for _, v := range voice.Order {
			constraints = append(constraints, harmony.Seventh(cur, v, t))
		}
	}
	if cur.IsDominant() {
		for _, v := range voice.Order {
			constraints = append(constraints, harmony.LeadingTone(cur, v, t))
		}
	}
	if cur.IsDim() {
		for _, v := range voice.Order {
			constraints = append(constraints, harmony.DiminishedFifth(cur, v, t))
		}
	}
	if cur.IsDimFull() {
		for _, v := range voice.Order {
			constraints = append(constraints, harmony.FullDiminishedRoot(cur, v, t))
		}
	}

	for _, con := range constraints {
		if err := e.AddConstraint(con); err != nil {
			return fmt.Errorf("builder: %w", err)
		}
	}
	return nil
}

// Solve is a thin convenience wrapper returning the problem's lazy solution
// stream; callers wanting control over cancellation can use p.Engine
// directly instead.
func (p *Problem) Solve(ctx context.Context) iter.Seq[csp.Assignment] {
	return p.Engine.Solutions(ctx)
}
