package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "binary" {
		t.Errorf("expected scenario binary, got %s", cfg.Scenario)
	}
	if cfg.Scheme != "leapfrog" {
		t.Errorf("expected scheme leapfrog, got %s", cfg.Scheme)
	}
	if cfg.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.MaxIterations <= 0 {
		t.Error("max iterations should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "figure8"
	cfg.Scheme = "rk4"
	cfg.Dt = 0.002
	cfg.Steps = 500
	cfg.Stride = 5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scenario: solar\ndt: 0.005\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario != "solar" {
		t.Errorf("expected scenario solar, got %s", cfg.Scenario)
	}
	if cfg.Dt != 0.005 {
		t.Errorf("expected dt 0.005, got %f", cfg.Dt)
	}
	if cfg.Scheme != DefaultScheme {
		t.Errorf("expected default scheme, got %s", cfg.Scheme)
	}
	if cfg.Tolerance != DefaultTolerance {
		t.Errorf("expected default tolerance, got %g", cfg.Tolerance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary", "orbit")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scheme != "leapfrog" {
		t.Errorf("expected scheme leapfrog, got %s", cfg.Scheme)
	}
	if cfg.Dt != 0.001 {
		t.Errorf("expected dt 0.001, got %f", cfg.Dt)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("binary", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "orbit"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("binary")
	if len(presets) == 0 {
		t.Error("expected presets for binary")
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}
