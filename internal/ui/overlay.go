//go:build ebiten

package ui

import (
	"image/color"

	"reiter-ca/internal/core"
	"reiter-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	ReceptiveMask() []float32
	TipMask() []float32
	EdgeMask() []float32
}

// Overlay draws optional debugging visuals on top of the crystal.
type Overlay struct {
	sim   core.Sim
	scale int

	showRim   bool
	showTips  bool
	showEdges bool

	painter *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update toggles layers: 1 receptive rim, 2 branch tips, 3 lattice edge.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showRim = !o.showRim
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTips = !o.showTips
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showEdges = !o.showEdges
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(maskProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	o.painter.Resize(size.W, size.H)
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showEdges {
		o.painter.BlitMask(screen, provider.EdgeMask(), color.RGBA{R: 120, G: 130, B: 160}, scale)
	}
	if o.showRim {
		o.painter.BlitMask(screen, provider.ReceptiveMask(), color.RGBA{R: 64, G: 164, B: 223}, scale)
	}
	if o.showTips {
		o.painter.BlitMask(screen, provider.TipMask(), color.RGBA{R: 255, G: 120, B: 40}, scale)
	}
}
