//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"reiter-ca/internal/app"
	"reiter-ca/internal/core"
	"reiter-ca/internal/export"
	"reiter-ca/internal/render"
	"reiter-ca/internal/sims/reiter"

	"github.com/hajimehoshi/ebiten/v2"
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

	renderer := export.NewRenderer(file.Output.CellPx, file.Output.Caption)
	save := func(sim core.Sim) string {
		f, ok := sim.(*reiter.Flake)
		if !ok {
			return ""
		}
		p := f.Lattice().Params()
		path := filepath.Join(file.Output.Dir, export.FileName(p.Beta, p.Gamma, "png"))
		if err := renderer.SavePNG(path, f.Lattice()); err != nil {
			log.Printf("export: %v", err)
			return "export failed"
		}
		log.Printf("saved %s after %d steps", path, f.Steps())
		return "saved " + filepath.Base(path)
	}

	game := app.New(flake, cfg.Scale, cfg.TPS, flake.Config().Seed)
	game.OnExport(save)
	if !*noExport {
		game.OnConverged(save)
	}

	size := flake.Size()
	w, h := render.ScreenSize(size.W, size.H, cfg.Scale)
	ebiten.SetWindowTitle("reiter-ca - " + flake.Name())
	ebiten.SetWindowSize(w+260, max(h, 420))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
