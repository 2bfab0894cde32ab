package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"reiter-ca/internal/app"
	"reiter-ca/internal/export"
	"reiter-ca/internal/run"
	"reiter-ca/internal/telemetry"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	maxSteps := flag.Int("steps", -1, "step limit (overrides run.max_steps; 0 = until convergence)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := grow(ctx, cfg, *maxSteps, logger, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// grow runs one flake and writes its artefacts. Telemetry and video files
// are closed on every return path.
func grow(ctx context.Context, cfg *app.Config, maxSteps int, logger *slog.Logger, stdout io.Writer) (err error) {
	flake, file, err := cfg.Load()
	if err != nil {
		return err
	}
	if maxSteps >= 0 {
		file.Run.MaxSteps = maxSteps
	}
	if err := file.Validate(); err != nil {
		return err
	}

	out := file.Output
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	p := flake.Lattice().Params()
	stem := export.Stem(p.Beta, p.Gamma)

	var observers []run.Observer
	var stats *telemetry.Writer
	switch {
	case out.Telemetry:
		stats, err = telemetry.Create(filepath.Join(out.Dir, stem+".csv"), 1)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stats.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("closing telemetry: %w", cerr))
			}
		}()
		observers = append(observers, stats)
	case out.Chart:
		// Chart only: keep the history in memory.
		stats = telemetry.NewWriter(io.Discard, 1)
		observers = append(observers, stats)
	}

	renderer := export.NewRenderer(out.CellPx, out.Caption)
	if out.Video {
		video, verr := export.NewVideoRecorder(filepath.Join(out.Dir, stem+".avi"), renderer, flake.Lattice().Size(), out.VideoEvery, out.VideoFPS)
		if verr != nil {
			return verr
		}
		defer func() {
			if cerr := video.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("closing video: %w", cerr))
			}
		}()
		observers = append(observers, video)
	}

	logger.Info("growing", "sim", flake.Name(), "size", flake.Lattice().Size(), "cells", flake.Lattice().Len(),
		"alpha", p.Alpha, "beta", p.Beta, "gamma", p.Gamma)
	res, err := run.Run(ctx, flake, run.Options{
		MaxSteps: file.Run.MaxSteps,
		LogEvery: file.Run.LogEvery,
		Logger:   logger,
	}, observers...)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("finished", "result", res)

	if out.PNG {
		path := filepath.Join(out.Dir, stem+".png")
		if err := renderer.SavePNG(path, flake.Lattice()); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "saved", path)
	}
	if out.Chart {
		path := filepath.Join(out.Dir, stem+".growth.png")
		switch err := export.WriteGrowthChart(path, stats.Records()); {
		case errors.Is(err, export.ErrNotEnoughData):
			logger.Warn("skipping growth chart", "records", len(stats.Records()))
		case err != nil:
			return err
		default:
			fmt.Fprintln(stdout, "saved", path)
		}
	}
	return file.WriteYAML(filepath.Join(out.Dir, "config.yaml"))
}
