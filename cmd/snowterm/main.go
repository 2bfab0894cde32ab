package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"reiter-ca/internal/app"
	"reiter-ca/internal/export"
	"reiter-ca/internal/sims/reiter"
	"reiter-ca/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	noExport := flag.Bool("no-export", false, "do not save a PNG when the crystal converges")
	flag.Parse()

	flake, file, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initialising screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewer := term.NewViewer(screen, flake, cfg.TPS)
	renderer := export.NewRenderer(file.Output.CellPx, file.Output.Caption)
	var saved string
	if !*noExport {
		viewer.OnConverged(func(f *reiter.Flake) {
			p := f.Lattice().Params()
			path := filepath.Join(file.Output.Dir, export.FileName(p.Beta, p.Gamma, "png"))
			if err := renderer.SavePNG(path, f.Lattice()); err != nil {
				viewer.SetMessage("export failed: " + err.Error())
				return
			}
			saved = path
			viewer.SetMessage("saved " + path)
		})
	}

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	frames := make(chan struct{})
	go func() {
		ticker := time.NewTicker(33 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case frames <- struct{}{}:
				default:
				}
			}
		}
	}()

	err = viewer.Run(ctx, events, frames)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}

	st := flake.Status()
	fmt.Printf("%s: %d steps, %d frozen cells, %s\n", flake.Name(), flake.Steps(), st.Frozen, st.Reason)
	if saved != "" {
		fmt.Printf("saved %s\n", saved)
	}
}
