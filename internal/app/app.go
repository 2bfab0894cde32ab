//go:build ebiten

package app

import (
	"image/color"

	"reiter-ca/internal/core"
	"reiter-ca/internal/render"
	"reiter-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// paletteProvider is implemented by sims that colour their own raster.
type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	notified    bool
	onConverged func(core.Sim) string
	onExport    func(core.Sim) string
}

// New constructs a Game stepping sim at tps steps per second.
func New(sim core.Sim, scale, tps int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		clock:   core.NewFixedStep(tps),
		scale:   scale,
		seed:    seed,
	}
}

// OnConverged registers a hook run once when the sim converges. The
// returned string is shown on the HUD.
func (g *Game) OnConverged(fn func(core.Sim) string) { g.onConverged = fn }

// OnExport registers the hook run by the E key.
func (g *Game) OnExport(fn func(core.Sim) string) { g.onExport = fn }

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.notified = false
	g.clock.Reset()
	g.hud.SetMessage("")
}

func (g *Game) converged() bool {
	c, ok := g.sim.(core.Converger)
	return ok && c.Converged()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) && g.onExport != nil {
		g.hud.SetMessage(g.onExport(g.sim))
	}

	g.overlay.Update()
	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)
	g.painter.Resize(size.W, size.H)

	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case !g.paused && !g.converged():
		for n := g.clock.Due(); n > 0 && !g.converged(); n-- {
			g.sim.Step()
		}
	}

	if g.converged() && !g.notified {
		g.notified = true
		if g.onConverged != nil {
			g.hud.SetMessage(g.onConverged(g.sim))
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if p, ok := g.sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
	size := g.sim.Size()
	_, h := render.ScreenSize(size.W, size.H, g.scale)
	g.hud.Draw(screen, size.W*g.scale, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	w, h := render.ScreenSize(s.W, s.H, g.scale)
	return w + hudWidth, max(h, 420)
}
