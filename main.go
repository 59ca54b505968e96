package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"fourvoices/builder"
	"fourvoices/chord"
	"fourvoices/config"
	"fourvoices/csp"
	"fourvoices/display"
	"fourvoices/pitch"
	"fourvoices/problem"
	"fourvoices/scorer"
	"fourvoices/voice"
)

type options struct {
	runTests   bool
	configPath string
	max        int
	rank       bool
}

func main() {
	opts, positional := parseArgs(os.Args[1:])

	if opts.runTests {
		if !runRegressionSuite() {
			os.Exit(1)
		}
		return
	}

	if len(positional) < 1 {
		printUsage()
		os.Exit(1)
	}

	if err := harmonize(positional[0], opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs extracts flags and returns remaining positional arguments, in
// the same hand-rolled style as the rest of this repository's CLI surface.
func parseArgs(args []string) (options, []string) {
	opts := options{max: 1}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--run-tests":
			opts.runTests = true
		case arg == "--rank":
			opts.rank = true
		case arg == "--config":
			if i+1 < len(args) {
				opts.configPath = args[i+1]
				i++
			} else {
				fmt.Println("Error: --config requires a path")
				os.Exit(1)
			}
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--max":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					fmt.Printf("Error: --max expects an integer, got %q\n", args[i+1])
					os.Exit(1)
				}
				opts.max = n
				i++
			} else {
				fmt.Println("Error: --max requires a number")
				os.Exit(1)
			}
		case strings.HasPrefix(arg, "--max="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--max="))
			if err != nil {
				fmt.Printf("Error: --max expects an integer, got %q\n", arg)
				os.Exit(1)
			}
			opts.max = n
		case arg == "--help" || arg == "-h":
			printUsage()
			os.Exit(0)
		default:
			remaining = append(remaining, arg)
		}
	}

	return opts, remaining
}

func harmonize(path string, opts options) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening problem file: %w", err)
	}
	defer f.Close()

	rep := config.Repertoire{Ranges: voice.DefaultRanges()}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: config: %v (using defaults)\n", err)
		}
		rep = loaded
	}

	result, err := problem.Parse(f, rep.ModifierAliases)
	if err != nil {
		return fmt.Errorf("parsing problem file: %w", err)
	}
	diags := make([]display.Stringer, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diags[i] = d
	}
	display.ShowDiagnostics(diags)

	if len(result.Chords) == 0 {
		return fmt.Errorf("no chords found in %s", path)
	}

	prob, err := builder.Build(result.Chords, result.FixedNotes, rep.Ranges)
	if err != nil {
		return fmt.Errorf("building problem: %w", err)
	}

	solutions := collectSolutions(prob, opts.max)
	if len(solutions) == 0 {
		fmt.Println("No solution found.")
		return nil
	}

	if opts.rank {
		sort.SliceStable(solutions, func(i, j int) bool {
			si := scorer.Smoothness.Score(solutions[i], prob.Chords)
			sj := scorer.Smoothness.Score(solutions[j], prob.Chords)
			return si < sj
		})
	}

	for i, sol := range solutions {
		display.ShowSolution(i, prob.Chords, sol)
	}
	return nil
}

func collectSolutions(prob *builder.Problem, max int) []csp.Assignment {
	var out []csp.Assignment
	for sol := range prob.Solve(context.Background()) {
		out = append(out, sol)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

func printUsage() {
	fmt.Println("fourvoices — four-part vocal harmonization solver")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fourvoices <problem-file>        Harmonize the chord sequence and print solutions")
	fmt.Println("  fourvoices --run-tests           Run the built-in regression suite")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>   Load a YAML repertoire file overriding voice ranges")
	fmt.Println("  --max <n>         Stop after n solutions (default 1; 0 = all)")
	fmt.Println("  --rank            Sort collected solutions by smoothness before printing")
	fmt.Println("  --help, -h        Show this help")
}

// runRegressionSuite exercises the concrete scenarios from spec.md §8 and
// prints a PASS/FAIL line per scenario. It returns false if any scenario
// fails.
func runRegressionSuite() bool {
	scenarios := []struct {
		name string
		run  func() error
	}{
		{"S1 C major single chord", scenarioS1},
		{"S2 authentic cadence V-I", scenarioS2},
		{"S3 bass specified", scenarioS3},
		{"S4 ii-V-I in C", scenarioS4},
		{"S5 fully diminished resolution", scenarioS5},
		{"S6 infeasible bass", scenarioS6},
		{"pitch round-trip", scenarioPitchRoundTrip},
		{"dim+7 equals dim7", scenarioDimIdempotence},
	}

	allPassed := true
	for _, s := range scenarios {
		if err := s.run(); err != nil {
			fmt.Printf("FAIL  %s: %v\n", s.name, err)
			allPassed = false
			continue
		}
		fmt.Printf("PASS  %s\n", s.name)
	}
	return allPassed
}

func mustChord(root int, mods []chord.Modifier, time int) *chord.Chord {
	c, err := chord.New(root, mods, time)
	if err != nil {
		panic(err)
	}
	return c
}

func firstSolution(p *builder.Problem) (csp.Assignment, bool) {
	for sol := range p.Solve(context.Background()) {
		return sol, true
	}
	return nil, false
}

func pc(n int) int { return ((n % 12) + 12) % 12 }

func at(a csp.Assignment, v voice.Name, t int) int {
	return a[csp.VarID(voice.Var{Voice: v, Time: t}.String())]
}

func scenarioS1() error {
	c := mustChord(0, []chord.Modifier{chord.ModMajor}, 0)
	p, err := builder.Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		return err
	}
	sol, ok := firstSolution(p)
	if !ok {
		return fmt.Errorf("expected at least one solution")
	}
	allowed := map[int]bool{0: true, 4: true, 7: true}
	s, a, t, b := at(sol, voice.Soprano, 0), at(sol, voice.Alto, 0), at(sol, voice.Tenor, 0), at(sol, voice.Bass, 0)
	for _, n := range []int{s, a, t, b} {
		if !allowed[pc(n)] {
			return fmt.Errorf("pitch %d not in C major tones", n)
		}
	}
	if !(s >= a && a >= t && t >= b) {
		return fmt.Errorf("voices crossed")
	}
	return nil
}

func scenarioS2() error {
	g7 := mustChord(7, []chord.Modifier{chord.Mod7}, 0)
	g7.SetRole(chord.RoleNone, "V")
	cmaj := mustChord(0, []chord.Modifier{chord.ModMajor}, 1)
	cmaj.SetRole(chord.RoleNone, "I")
	p, err := builder.Build([]*chord.Chord{g7, cmaj}, nil, nil)
	if err != nil {
		return err
	}
	sol, ok := firstSolution(p)
	if !ok {
		return fmt.Errorf("expected at least one solution")
	}
	for _, v := range voice.Order {
		cur := at(sol, v, 0)
		next := at(sol, v, 1)
		if pc(cur) == 11 && next != cur+1 {
			return fmt.Errorf("leading tone did not resolve up by semitone")
		}
		if pc(cur) == 5 && next != cur-1 {
			return fmt.Errorf("seventh did not resolve down by step")
		}
	}
	return nil
}

func scenarioS3() error {
	c := mustChord(0, []chord.Modifier{chord.ModMajor}, 0)
	c.SetBass(4)
	p, err := builder.Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		return err
	}
	sol, ok := firstSolution(p)
	if !ok {
		return fmt.Errorf("expected at least one solution")
	}
	if pc(at(sol, voice.Bass, 0)) != 4 {
		return fmt.Errorf("bass pitch class mismatch")
	}
	return nil
}

func scenarioS4() error {
	ii := mustChord(2, []chord.Modifier{chord.ModMin7}, 0)
	v7 := mustChord(7, []chord.Modifier{chord.Mod7}, 1)
	v7.SetRole(chord.RoleNone, "V")
	i := mustChord(0, []chord.Modifier{chord.ModMajor}, 2)
	p, err := builder.Build([]*chord.Chord{ii, v7, i}, nil, nil)
	if err != nil {
		return err
	}
	if _, ok := firstSolution(p); !ok {
		return fmt.Errorf("expected at least one solution")
	}
	return nil
}

func scenarioS5() error {
	bdim7 := mustChord(11, []chord.Modifier{chord.ModDim7}, 0)
	cmaj := mustChord(0, []chord.Modifier{chord.ModMajor}, 1)
	p, err := builder.Build([]*chord.Chord{bdim7, cmaj}, nil, nil)
	if err != nil {
		return err
	}
	sol, ok := firstSolution(p)
	if !ok {
		return fmt.Errorf("expected at least one solution")
	}
	for _, v := range voice.Order {
		cur := at(sol, v, 0)
		if pc(cur) == 11 && at(sol, v, 1)-cur != 1 {
			return fmt.Errorf("diminished root did not resolve up by semitone")
		}
	}
	return nil
}

func scenarioS6() error {
	c := mustChord(0, []chord.Modifier{chord.ModMajor}, 0)
	c.SetBass(2) // D is not a C major chord tone
	p, err := builder.Build([]*chord.Chord{c}, nil, nil)
	if err != nil {
		return err
	}
	if _, ok := firstSolution(p); ok {
		return fmt.Errorf("expected no solutions for infeasible bass")
	}
	return nil
}

func scenarioPitchRoundTrip() error {
	for n := 0; n < 128; n++ {
		name, octave := pitch.Name(n)
		back, err := pitch.NumberOf(name, octave)
		if err != nil {
			return err
		}
		if back != n {
			return fmt.Errorf("round trip mismatch for %d: got %d via %s%d", n, back, name, octave)
		}
	}
	return nil
}

func scenarioDimIdempotence() error {
	a := mustChord(0, []chord.Modifier{chord.ModDim, chord.Mod7}, 0)
	b := mustChord(0, []chord.Modifier{chord.ModDim7}, 0)
	at, bt := a.ChordTones(), b.ChordTones()
	if len(at) != len(bt) {
		return fmt.Errorf("dim+7 tone count %d != dim7 tone count %d", len(at), len(bt))
	}
	for i := range at {
		if at[i] != bt[i] {
			return fmt.Errorf("dim+7 tones %v != dim7 tones %v", at, bt)
		}
	}
	return nil
}
