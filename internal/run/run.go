// Package run drives a flake until it converges, hits a step limit or the
// context is cancelled.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"reiter-ca/internal/export"
	"reiter-ca/internal/sims/reiter"
)

// ErrNilFlake is returned when Run is given no flake.
var ErrNilFlake = errors.New("run: nil flake")

// Observer sees the flake after every step. The lattice must only be read.
type Observer interface {
	Observe(f *reiter.Flake) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f *reiter.Flake) error

// Observe calls fn(f).
func (fn ObserverFunc) Observe(f *reiter.Flake) error { return fn(f) }

// Options bound a run.
type Options struct {
	MaxSteps int // 0 = until convergence
	LogEvery int // 0 disables progress logs
	Logger   *slog.Logger
}

// Result describes how a run ended.
type Result struct {
	Steps     int
	Reason    reiter.Reason
	Frozen    int
	Elapsed   time.Duration
	Converged bool
	StepLimit bool // MaxSteps reached before convergence
}

// LogValue implements slog.LogValuer for structured logging.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("steps", r.Steps),
		slog.String("reason", r.Reason.String()),
		slog.Int("frozen", r.Frozen),
		slog.Duration("elapsed", r.Elapsed),
		slog.Bool("converged", r.Converged),
		slog.Bool("step_limit", r.StepLimit),
	)
}

// Run steps f until the detector reports convergence. Cancellation is
// checked between steps; a step in progress always completes. Observers run
// in order after each step and the first error ends the run.
func Run(ctx context.Context, f *reiter.Flake, opts Options, observers ...Observer) (Result, error) {
	if f == nil {
		return Result{}, ErrNilFlake
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	taken := 0
	result := func() Result {
		st := f.Status()
		return Result{
			Steps:     f.Steps(),
			Reason:    st.Reason,
			Frozen:    st.Frozen,
			Elapsed:   time.Since(start),
			Converged: st.Converged,
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return result(), err
		}
		if opts.MaxSteps > 0 && taken >= opts.MaxSteps {
			res := result()
			res.StepLimit = true
			logger.Warn("step limit reached", "max_steps", opts.MaxSteps, "result", res)
			return res, nil
		}

		f.Step()
		taken++

		for _, obs := range observers {
			if err := obs.Observe(f); err != nil {
				return result(), fmt.Errorf("observer at step %d: %w", f.Steps(), err)
			}
		}

		if opts.LogEvery > 0 && f.Steps()%opts.LogEvery == 0 {
			st := f.Status()
			logger.Info("progress", "step", f.Steps(), "frozen", st.Frozen, "tips", st.Tips)
		}

		if f.Converged() {
			res := result()
			p := f.Lattice().Params()
			logger.Info("converged",
				"frozen", res.Frozen,
				"beta", export.FormatFloat(p.Beta),
				"gamma", export.FormatFloat(p.Gamma),
				"reason", res.Reason.String(),
				"steps", res.Steps,
			)
			return res, nil
		}
	}
}
