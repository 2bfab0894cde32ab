package app

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"reiter-ca/internal/core"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

func TestKVList(t *testing.T) {
	var l KVList
	if err := l.Set("beta=0.5"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("gamma = 0.002"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("beta=0.6"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("nonsense"); err == nil {
		t.Fatal("missing '=' must be rejected")
	}
	m := l.Map()
	if m["beta"] != "0.6" || m["gamma"] != "0.002" {
		t.Fatalf("Map() = %v", m)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flake.yaml")
	body := "lattice:\n  size: 12\n  beta: 0.7\n  gamma: 0.003\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	flake, file, err := parse(t, "-config", path, "-set", "gamma=0.0005").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := flake.Config()
	if got.Size != 12 || got.Beta != 0.7 || got.Gamma != 0.0005 {
		t.Fatalf("file and -set not applied: %+v", got)
	}
	if file.Lattice.Gamma != 0.0005 {
		t.Fatal("returned file config must reflect the built flake")
	}

	flake, _, err = parse(t, "-config", path, "-sim", "plate", "-seed", "7").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got = flake.Config()
	if flake.Name() != "plate" || got.Beta != 0.8 || got.Gamma != 0.002 {
		t.Fatalf("preset rates must beat the file: %s %+v", flake.Name(), got)
	}
	if got.Size != 12 || got.Seed != 7 {
		t.Fatalf("file size and -seed must survive the preset: %+v", got)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	_, _, err := parse(t, "-sim", "platte").Load()
	if !errors.Is(err, core.ErrUnknownSim) {
		t.Fatalf("expected ErrUnknownSim, got %v", err)
	}
}
