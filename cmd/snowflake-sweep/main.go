package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"reiter-ca/internal/app"
	"reiter-ca/internal/export"
	"reiter-ca/internal/sweep"
)

// floatList parses a comma-separated list of floats.
type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	var out []float64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", part, err)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var betas, gammas floatList
	flag.Var(&betas, "betas", "comma-separated beta values (overrides sweep.betas)")
	flag.Var(&gammas, "gammas", "comma-separated gamma values (overrides sweep.gammas)")
	parallel := flag.Int("parallel", -1, "concurrent runs (overrides sweep.parallel; 0 = GOMAXPROCS)")
	summary := flag.Bool("summary", true, "write sweep.csv next to the images")
	flag.Parse()

	flake, file, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}
	if len(betas) > 0 {
		file.Sweep.Betas = betas
	}
	if len(gammas) > 0 {
		file.Sweep.Gammas = gammas
	}
	if *parallel >= 0 {
		file.Sweep.Parallel = *parallel
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	outcomes, err := sweep.Run(ctx, sweep.Options{
		Base:     flake.Config(),
		Betas:    file.Sweep.Betas,
		Gammas:   file.Sweep.Gammas,
		Parallel: file.Sweep.Parallel,
		MaxSteps: file.Run.MaxSteps,
		Dir:      file.Output.Dir,
		Renderer: export.NewRenderer(file.Output.CellPx, file.Output.Caption),
		Logger:   logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%-8s %-8s %8s %8s  %s\n", "beta", "gamma", "steps", "frozen", "reason")
	for _, o := range outcomes {
		fmt.Printf("%-8s %-8s %8d %8d  %s\n",
			export.FormatFloat(o.Beta), export.FormatFloat(o.Gamma), o.Steps, o.Frozen, o.Reason)
	}

	if *summary {
		path := filepath.Join(file.Output.Dir, "sweep.csv")
		if err := sweep.WriteCSV(path, outcomes); err != nil {
			log.Fatal(err)
		}
		fmt.Println("saved", path)
	}
	if err := file.WriteYAML(filepath.Join(file.Output.Dir, "config.yaml")); err != nil {
		log.Fatal(err)
	}
}
