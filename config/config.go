// Package config loads the optional repertoire file (spec.md §6 expansion):
// voice-range overrides and extra modifier-token synonyms, so the classical
// SATB defaults aren't hard-wired into the solver.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fourvoices/pitch"
	"fourvoices/voice"
)

// noteSpec is a letter-name pitch as written in YAML, e.g. "C4".
type noteSpec struct {
	Low  string `yaml:"low"`
	High string `yaml:"high"`
}

type fileFormat struct {
	Voices    map[string]noteSpec `yaml:"voices"`
	Modifiers map[string]string   `yaml:"modifiers"`
}

// Repertoire is a parsed config file: a voice.RangeTable plus extra
// modifier synonyms (raw token -> canonical token spelling), consulted by
// chord.ResolveModifier before its built-in vocabulary.
type Repertoire struct {
	Ranges          voice.RangeTable
	ModifierAliases map[string]string
}

var voiceKeys = map[string]voice.Name{
	"soprano": voice.Soprano,
	"alto":    voice.Alto,
	"tenor":   voice.Tenor,
	"bass":    voice.Bass,
}

// Load reads and parses a repertoire YAML file. On any error — missing
// file, malformed YAML, bad note name — it returns the classical SATB
// defaults together with the error, so callers can fall back rather than
// abort (config errors never abort, matching spec.md §7's posture for
// non-core diagnostics).
func Load(path string) (Repertoire, error) {
	defaults := Repertoire{Ranges: voice.DefaultRanges()}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("config: %w", err)
	}

	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return defaults, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	ranges := voice.DefaultRanges()
	for key, spec := range parsed.Voices {
		v, ok := voiceKeys[key]
		if !ok {
			return defaults, fmt.Errorf("config: unrecognized voice %q", key)
		}
		low, err := parseNote(spec.Low)
		if err != nil {
			return defaults, fmt.Errorf("config: voice %q low note: %w", key, err)
		}
		high, err := parseNote(spec.High)
		if err != nil {
			return defaults, fmt.Errorf("config: voice %q high note: %w", key, err)
		}
		ranges[v] = voice.Range{Low: low, High: high}
	}

	aliases := make(map[string]string, len(parsed.Modifiers))
	for raw, canon := range parsed.Modifiers {
		aliases[strings.ToLower(strings.TrimSpace(raw))] = canon
	}

	return Repertoire{Ranges: ranges, ModifierAliases: aliases}, nil
}

// parseNote parses a letter name plus trailing octave digits, e.g. "C#4".
func parseNote(s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("bad note %q", s)
	}
	split := len(s)
	for split > 0 && (s[split-1] == '-' || (s[split-1] >= '0' && s[split-1] <= '9')) {
		split--
	}
	name, octaveStr := s[:split], s[split:]
	var octave int
	if _, err := fmt.Sscanf(octaveStr, "%d", &octave); err != nil {
		return 0, fmt.Errorf("bad octave in %q: %w", s, err)
	}
	return pitch.NumberOf(name, octave)
}
