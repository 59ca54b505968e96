package config

import (
	"os"
	"path/filepath"
	"testing"

	"fourvoices/chord"
	"fourvoices/voice"
)

func TestLoadOverridesRanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repertoire.yaml")
	const content = `
voices:
  soprano: {low: "D4", high: "B5"}
modifiers:
  Funk7: "7"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rep, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := rep.Ranges.Range(voice.Soprano)
	if err != nil {
		t.Fatal(err)
	}
	if r.Low != 62 || r.High != 83 {
		t.Errorf("soprano range = %+v, want D4..B5 (62..83)", r)
	}
	// Unconfigured voices keep the classical defaults.
	alto, _ := rep.Ranges.Range(voice.Alto)
	defaultAlto, _ := voice.DefaultRanges().Range(voice.Alto)
	if alto != defaultAlto {
		t.Errorf("alto range = %+v, want untouched default %+v", alto, defaultAlto)
	}
	// Alias keys are lowered so lookups are case-insensitive, matching
	// chord.ResolveModifier's own case folding.
	if rep.ModifierAliases["funk7"] != "7" {
		t.Errorf("modifier alias not loaded: %+v", rep.ModifierAliases)
	}
	mod, err := chord.ResolveModifier("FUNK7", rep.ModifierAliases)
	if err != nil {
		t.Fatal(err)
	}
	if mod != chord.Mod7 {
		t.Errorf("ResolveModifier(%q) = %v, want Mod7", "FUNK7", mod)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	rep, err := Load("/nonexistent/path.yaml")
	if err == nil {
		t.Error("expected an error for a missing config file")
	}
	if rep.Ranges == nil {
		t.Error("expected default ranges even on error")
	}
}
