package sweep

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reiter-ca/internal/export"
	"reiter-ca/internal/sims/reiter"
)

func smallBase() reiter.Config {
	cfg := reiter.DefaultConfig()
	cfg.Size = 4
	return cfg
}

func TestSweepGrid(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	outcomes, err := Run(context.Background(), Options{
		Base:     smallBase(),
		Betas:    []float64{0.8, 0.4},
		Gammas:   []float64{0.002, 0.001},
		Parallel: 3,
		MaxSteps: 2000,
		Dir:      dir,
		Renderer: export.NewRenderer(2, false),
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}
	want := []struct{ beta, gamma float64 }{{0.4, 0.001}, {0.4, 0.002}, {0.8, 0.001}, {0.8, 0.002}}
	for i, o := range outcomes {
		if o.Beta != want[i].beta || o.Gamma != want[i].gamma {
			t.Fatalf("outcome %d is (%v, %v), expected %v", i, o.Beta, o.Gamma, want[i])
		}
		if !o.Converged {
			t.Fatalf("pair (%v, %v) did not converge: %+v", o.Beta, o.Gamma, o)
		}
		if o.Image != export.FileName(o.Beta, o.Gamma, "png") {
			t.Fatalf("image name %q", o.Image)
		}
		if _, err := os.Stat(filepath.Join(dir, o.Image)); err != nil {
			t.Fatalf("missing image: %v", err)
		}
	}

	csvPath := filepath.Join(dir, "sweep.csv")
	if err := WriteCSV(csvPath, outcomes); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "beta,gamma,steps") {
		t.Fatalf("unexpected summary:\n%s", data)
	}
}

func TestSweepRejectsBadGrid(t *testing.T) {
	if _, err := Run(context.Background(), Options{Base: smallBase(), Gammas: []float64{0.001}}); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("expected ErrEmptyGrid, got %v", err)
	}
	_, err := Run(context.Background(), Options{
		Base:   smallBase(),
		Betas:  []float64{-0.1},
		Gammas: []float64{0.001},
	})
	if !errors.Is(err, reiter.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{
		Base:   smallBase(),
		Betas:  []float64{0.4},
		Gammas: []float64{0.001},
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
