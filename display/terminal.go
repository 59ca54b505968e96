// Package display pretty-prints harmonization results to the terminal: one
// block per solution, each block showing every time step's chord symbol and
// the pitch name sounding in each voice, per spec.md §6.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fourvoices/chord"
	"fourvoices/csp"
	"fourvoices/pitch"
	"fourvoices/voice"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	voiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ShowSolution prints one block: "t=<n> <chord>  S:name A:name T:name B:name"
// for every chord in the sequence, using the pitches bound in assignment.
func ShowSolution(index int, chords []*chord.Chord, assignment csp.Assignment) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("── Solution %d ──", index)))
	for _, c := range chords {
		row := make([]string, 0, len(voice.Order))
		for _, v := range voice.Order {
			id := csp.VarID(voice.Var{Voice: v, Time: c.Time}.String())
			n, ok := assignment[id]
			if !ok {
				row = append(row, fmt.Sprintf("%s:?", v))
				continue
			}
			name, octave := pitch.Name(n)
			row = append(row, voiceStyle.Render(fmt.Sprintf("%s:%s%d", v, name, octave)))
		}
		fmt.Printf("  t=%-2d %s  %s\n", c.Time, chordStyle.Render(c.String()), strings.Join(row, " "))
	}
	fmt.Println()
}

// Stringer is the minimal shape display needs from a problem/config
// diagnostic, avoiding a hard dependency on either package.
type Stringer interface {
	String() string
}

// ShowDiagnostics prints parse diagnostics the way a human would skim them,
// one per line, prefixed so they're easy to grep out of solution output.
func ShowDiagnostics(diags []Stringer) {
	for _, d := range diags {
		fmt.Printf("warning: %s\n", d.String())
	}
}
