package export

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"reiter-ca/internal/hex"
	"reiter-ca/internal/sims/reiter"
)

const (
	captionHeight = 20
	margin        = 6
)

var edgeColor = color.RGBA{R: 70, G: 80, B: 110, A: 255}

// Renderer rasterises a lattice as pointy-top hexagons.
type Renderer struct {
	CellPx  float64 // hexagon corner radius in pixels
	Caption bool
}

// NewRenderer returns a renderer drawing hexagons of the given radius.
func NewRenderer(cellPx int, caption bool) *Renderer {
	if cellPx < 1 {
		cellPx = 1
	}
	return &Renderer{CellPx: float64(cellPx), Caption: caption}
}

// Bounds returns the image size for a lattice of radius n.
func (r *Renderer) Bounds(n int) (w, h int) {
	w = int(math.Ceil(math.Sqrt(3)*r.CellPx*float64(2*n+1))) + 2*margin
	h = int(math.Ceil(r.CellPx*(3*float64(n)+2))) + 2*margin
	if r.Caption {
		h += captionHeight
	}
	return w, h
}

// Image draws the lattice. The lattice is only read.
func (r *Renderer) Image(l *reiter.Lattice) image.Image {
	return r.draw(l).Image()
}

// SavePNG draws the lattice and writes it to path, creating parent
// directories as needed.
func (r *Renderer) SavePNG(path string, l *reiter.Lattice) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating image directory: %w", err)
	}
	if err := r.draw(l).SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (r *Renderer) draw(l *reiter.Lattice) *gg.Context {
	n := l.Size()
	w, h := r.Bounds(n)
	dc := gg.NewContext(w, h)

	palette := reiter.DisplayPalette()
	dc.SetColor(palette[0])
	dc.Clear()

	cx := float64(w) / 2
	cy := float64(margin) + r.CellPx*(1.5*float64(n)+1)
	ref := l.Params().Beta
	// Pointy-top: gg starts polygons at the top for rotation pi/6.
	const rotation = math.Pi / 6

	l.Each(func(c hex.Axial, cell reiter.Cell) {
		px, py := c.ToPixel(r.CellPx)
		dc.SetColor(palette[reiter.EncodeCell(cell, ref)])
		dc.DrawRegularPolygon(6, cx+px, cy+py, r.CellPx, rotation)
		dc.Fill()
	})

	dc.SetColor(edgeColor)
	dc.SetLineWidth(1)
	l.Each(func(c hex.Axial, cell reiter.Cell) {
		if !l.IsEdge(c) || cell.Frozen() {
			return
		}
		px, py := c.ToPixel(r.CellPx)
		dc.DrawRegularPolygon(6, cx+px, cy+py, r.CellPx, rotation)
		dc.Stroke()
	})

	if r.Caption {
		p := l.Params()
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetRGB(0.85, 0.9, 1)
		text := fmt.Sprintf("alpha=%s beta=%s gamma=%s frozen=%d",
			FormatFloat(p.Alpha), FormatFloat(p.Beta), FormatFloat(p.Gamma), l.FrozenCount())
		dc.DrawString(text, margin, float64(h-margin))
	}
	return dc
}
