package reiter

import (
	"image/color"
	"math"
)

const (
	displayOutside = 0

	displayVaporBase   = 1
	displayVaporLevels = 64

	displayRimBase   = 80
	displayRimLevels = 32

	displayIceBase   = 128
	displayIceLevels = 64
	// iceSpan is the excess mass above the freeze threshold that maps to the
	// brightest ice shade.
	iceSpan = 1.0
)

var reiterPalette = buildReiterPalette()

// Palette exposes the colour palette used for rendering display values.
func (f *Flake) Palette() []color.RGBA {
	return reiterPalette
}

// DisplayPalette returns the palette indexed by EncodeCell values. Callers
// must not modify it.
func DisplayPalette() []color.RGBA { return reiterPalette }

// Classify reports what kind of cell a display value encodes.
func Classify(value uint8) (inside, receptive, frozen bool) {
	switch {
	case value == displayOutside:
		return false, false, false
	case value >= displayIceBase:
		return true, true, true
	case value >= displayRimBase:
		return true, true, false
	default:
		return true, false, false
	}
}

// EncodeCell maps a cell to its display value. vaporRef is the vapor
// density drawn at full brightness.
func EncodeCell(cell Cell, vaporRef float64) uint8 {
	switch {
	case cell.Frozen():
		return displayIceBase + level((cell.State-FreezeThreshold)/iceSpan, displayIceLevels)
	case cell.Receptive:
		return displayRimBase + level(cell.State/FreezeThreshold, displayRimLevels)
	default:
		if vaporRef <= 0 {
			return displayVaporBase
		}
		return displayVaporBase + level(cell.U/vaporRef, displayVaporLevels)
	}
}

func level(frac float64, levels int) uint8 {
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	idx := int(frac * float64(levels))
	if idx >= levels {
		idx = levels - 1
	}
	return uint8(idx)
}

func (f *Flake) rebuildDisplay() {
	f.display.Fill(displayOutside)
	ref := f.lattice.params.Beta
	n := f.lattice.size
	for i, c := range f.lattice.coords {
		v := EncodeCell(f.lattice.cells[i], ref)
		x, y := c.Doubled(n)
		f.display.SetRun(x, y, 2, v)
	}
	f.dirty = false
}

func buildReiterPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	background := color.NRGBA{R: 6, G: 8, B: 18, A: 255}
	for i := range palette {
		palette[i] = toRGBA(background)
	}

	vaporLow := color.NRGBA{R: 10, G: 18, B: 42, A: 255}
	vaporHigh := color.NRGBA{R: 40, G: 90, B: 150, A: 255}
	for i := 0; i < displayVaporLevels; i++ {
		w := float64(i) / float64(displayVaporLevels-1)
		palette[displayVaporBase+i] = toRGBA(blendColors(vaporLow, vaporHigh, w))
	}

	rimLow := color.NRGBA{R: 60, G: 110, B: 170, A: 255}
	rimHigh := color.NRGBA{R: 150, G: 200, B: 240, A: 255}
	for i := 0; i < displayRimLevels; i++ {
		w := float64(i) / float64(displayRimLevels-1)
		palette[displayRimBase+i] = toRGBA(blendColors(rimLow, rimHigh, w))
	}

	iceLow := color.NRGBA{R: 200, G: 228, B: 250, A: 255}
	iceHigh := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < displayIceLevels; i++ {
		w := float64(i) / float64(displayIceLevels-1)
		palette[displayIceBase+i] = toRGBA(blendColors(iceLow, iceHigh, w))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
