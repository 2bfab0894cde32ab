package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reiter-ca/internal/sims/reiter"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lattice.Size != 200 || cfg.Lattice.Beta != 0.4 || cfg.Lattice.Gamma != 0.001 {
		t.Fatalf("unexpected lattice defaults: %+v", cfg.Lattice)
	}
	if cfg.Run.MaxSteps != 20000 || cfg.Output.Dir != "images" {
		t.Fatalf("unexpected run/output defaults: %+v %+v", cfg.Run, cfg.Output)
	}
	if len(cfg.Sweep.Betas) != 5 || len(cfg.Sweep.Gammas) != 3 {
		t.Fatalf("unexpected sweep grid: %+v", cfg.Sweep)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flake.yaml")
	body := "lattice:\n  beta: 0.65\n  gamma: 0.0001\noutput:\n  cell_px: 0\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lattice.Beta != 0.65 || cfg.Lattice.Gamma != 0.0001 {
		t.Fatalf("overrides not applied: %+v", cfg.Lattice)
	}
	if cfg.Lattice.Size != 200 || cfg.Lattice.Alpha != 1 {
		t.Fatalf("unset fields must keep defaults: %+v", cfg.Lattice)
	}
	if cfg.Output.CellPx != 4 {
		t.Fatalf("cell_px 0 must fall back to 4, got %d", cfg.Output.CellPx)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReiterRoundTrip(t *testing.T) {
	cfg := Default()
	rc := cfg.Reiter()
	rc.Beta = 0.8
	rc.Workers = 3
	cfg.SetReiter(rc)
	if cfg.Lattice.Beta != 0.8 || cfg.Run.Workers != 3 {
		t.Fatalf("SetReiter not applied: %+v %+v", cfg.Lattice, cfg.Run)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Reiter() != cfg.Reiter() {
		t.Fatalf("written config reloads as %+v, expected %+v", back.Reiter(), cfg.Reiter())
	}
}

func TestValidateRejectsBadLattice(t *testing.T) {
	cfg := Default()
	cfg.Lattice.Alpha = -1
	if err := cfg.Validate(); !errors.Is(err, reiter.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	cfg = Default()
	cfg.Run.MaxSteps = -5
	if err := cfg.Validate(); !errors.Is(err, reiter.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
