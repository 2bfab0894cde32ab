// Package sweep grows one crystal per (beta, gamma) pair and exports each.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"reiter-ca/internal/export"
	"reiter-ca/internal/run"
	"reiter-ca/internal/sims/reiter"
)

// ErrEmptyGrid is returned when either axis of the grid has no values.
var ErrEmptyGrid = errors.New("sweep: empty beta or gamma list")

// Options describe a grid. Base supplies size, alpha, noise and seed; its
// beta and gamma are replaced per pair.
type Options struct {
	Base     reiter.Config
	Betas    []float64
	Gammas   []float64
	Parallel int // concurrent runs, 0 = GOMAXPROCS
	MaxSteps int

	// Dir receives one PNG per pair named by export.FileName. Empty skips
	// image output.
	Dir      string
	Renderer *export.Renderer
	Logger   *slog.Logger
}

// Outcome summarises one pair.
type Outcome struct {
	Beta      float64 `csv:"beta"`
	Gamma     float64 `csv:"gamma"`
	Steps     int     `csv:"steps"`
	Frozen    int     `csv:"frozen"`
	Reason    string  `csv:"reason"`
	Converged bool    `csv:"converged"`
	Image     string  `csv:"image"`
	ElapsedMS int64   `csv:"elapsed_ms"`
}

type pair struct{ beta, gamma float64 }

// Run executes the grid and returns outcomes sorted by (beta, gamma). The
// first failing pair cancels the rest.
func Run(ctx context.Context, opts Options) ([]Outcome, error) {
	if len(opts.Betas) == 0 || len(opts.Gammas) == 0 {
		return nil, ErrEmptyGrid
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	base := opts.Base
	if parallel > 1 {
		// Runs already saturate the cores; keep each engine serial.
		base.Workers = 1
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = export.NewRenderer(4, true)
	}

	var pairs []pair
	for _, b := range opts.Betas {
		for _, g := range opts.Gammas {
			cfg := base
			cfg.Beta, cfg.Gamma = b, g
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("beta=%v gamma=%v: %w", b, g, err)
			}
			pairs = append(pairs, pair{b, g})
		}
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	logger.Info("sweep started", "pairs", len(pairs), "parallel", parallel, "size", base.Size)
	start := time.Now()

	outcomes := make([]Outcome, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			out, err := runPair(gctx, base, p, opts, renderer, logger)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Beta != outcomes[j].Beta {
			return outcomes[i].Beta < outcomes[j].Beta
		}
		return outcomes[i].Gamma < outcomes[j].Gamma
	})
	logger.Info("sweep finished", "pairs", len(pairs), "elapsed", time.Since(start))
	return outcomes, nil
}

func runPair(ctx context.Context, base reiter.Config, p pair, opts Options, r *export.Renderer, logger *slog.Logger) (Outcome, error) {
	cfg := base
	cfg.Beta, cfg.Gamma = p.beta, p.gamma
	flake, err := reiter.New(cfg)
	if err != nil {
		return Outcome{}, err
	}
	pairLogger := logger.With("beta", export.FormatFloat(p.beta), "gamma", export.FormatFloat(p.gamma))
	res, err := run.Run(ctx, flake, run.Options{MaxSteps: opts.MaxSteps, Logger: pairLogger})
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Beta:      p.beta,
		Gamma:     p.gamma,
		Steps:     res.Steps,
		Frozen:    res.Frozen,
		Reason:    res.Reason.String(),
		Converged: res.Converged,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	if opts.Dir != "" {
		out.Image = export.FileName(p.beta, p.gamma, "png")
		if err := r.SavePNG(filepath.Join(opts.Dir, out.Image), flake.Lattice()); err != nil {
			return Outcome{}, err
		}
	}
	return out, nil
}

// WriteCSV writes the outcomes with a header row.
func WriteCSV(path string, outcomes []Outcome) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := gocsv.Marshal(outcomes, f); err != nil {
		f.Close()
		return fmt.Errorf("writing sweep summary: %w", err)
	}
	return f.Close()
}
