package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values
// past the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillMaskRGBA tints buf by mask intensity with premultiplied alpha; zero
// intensity is transparent.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA, maxAlpha float64) {
	for i, m := range mask {
		base := i * 4
		v := float64(m)
		if v <= 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		if v > 1 {
			v = 1
		}
		a := maxAlpha * v
		buf[base+0] = uint8(float64(tint.R)*a/255 + 0.5)
		buf[base+1] = uint8(float64(tint.G)*a/255 + 0.5)
		buf[base+2] = uint8(float64(tint.B)*a/255 + 0.5)
		buf[base+3] = uint8(a + 0.5)
	}
}
