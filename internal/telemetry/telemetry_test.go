package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reiter-ca/internal/sims/reiter"
)

func newFlake(t *testing.T, size int) *reiter.Flake {
	t.Helper()
	cfg := reiter.DefaultConfig()
	cfg.Size = size
	cfg.Workers = 1
	f, err := reiter.New(cfg)
	if err != nil {
		t.Fatalf("reiter.New: %v", err)
	}
	return f
}

func TestComputeInitialLattice(t *testing.T) {
	f := newFlake(t, 2)
	s := Compute(0, f.Lattice())
	// 19 cells: one seed at 1.0 and 18 vapor cells at beta.
	if s.Frozen != 1 || s.Radius != 0 {
		t.Fatalf("initial frozen=%d radius=%d", s.Frozen, s.Radius)
	}
	if want := 1 + 18*0.4; math.Abs(s.TotalMass-want) > 1e-9 {
		t.Fatalf("total mass %v, expected %v", s.TotalMass, want)
	}
	if math.Abs(s.TotalMass-(s.MobileMass+s.ImmobileMass)) > 1e-9 {
		t.Fatalf("mass pools do not add up: %+v", s)
	}
	if s.MaxState != 1 {
		t.Fatalf("max state %v", s.MaxState)
	}
	if math.Abs(s.MeanVapor-0.4) > 1e-12 {
		t.Fatalf("mean vapor %v", s.MeanVapor)
	}
}

func TestComputeTracksGrowth(t *testing.T) {
	f := newFlake(t, 6)
	for i := 0; i < 400 && f.Status().Frozen < 7; i++ {
		f.Step()
	}
	s := Compute(f.Steps(), f.Lattice())
	if s.Frozen != f.Status().Frozen {
		t.Fatalf("frozen %d, detector saw %d", s.Frozen, f.Status().Frozen)
	}
	if s.Frozen > 1 && s.Radius < 1 {
		t.Fatalf("grown crystal must have a radius: %+v", s)
	}
	if s.Receptive == 0 {
		t.Fatal("a growing crystal has a receptive rim")
	}
}

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 1)
	for step := 1; step <= 3; step++ {
		if err := w.Write(StepStats{Step: step, Frozen: step}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "step,frozen,receptive,total_mass") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if strings.Count(buf.String(), "step,") != 1 {
		t.Fatal("header written more than once")
	}
	if len(w.Records()) != 3 || w.Records()[2].Step != 3 {
		t.Fatalf("records %+v", w.Records())
	}
}

func TestWriterRecordsConvergedSteps(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 100)
	f := newFlake(t, 10)
	// The seed is the only frozen cell for the first few steps, so from
	// step 2 on the detector reports a stall.
	for i := 0; i < 4; i++ {
		f.Step()
		if err := w.Observe(f); err != nil {
			t.Fatalf("Observe: %v", err)
		}
	}
	recs := w.Records()
	if len(recs) != 3 || recs[0].Step != 2 || recs[2].Step != 4 {
		t.Fatalf("expected steps 2..4, got %+v", recs)
	}
}

func TestNilWriter(t *testing.T) {
	var w *Writer
	if err := w.Write(StepStats{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if w.Records() != nil {
		t.Fatal("nil writer has no records")
	}
}

func TestCreateWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "telemetry.csv")
	w, err := Create(path, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Write(StepStats{Step: 1}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "step,") {
		t.Fatalf("unexpected file contents %q", data)
	}
}
