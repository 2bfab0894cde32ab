package reiter

import "reiter-ca/internal/hex"

// ReceptiveMask marks the growth rim (receptive, not yet frozen) on the
// display raster.
func (f *Flake) ReceptiveMask() []float32 {
	return f.mask(func(_ hex.Axial, cell Cell) float32 {
		if cell.Receptive && !cell.Frozen() {
			return 1
		}
		return 0
	})
}

// TipMask marks the six branch tips: full intensity once frozen, half
// before.
func (f *Flake) TipMask() []float32 {
	tips := f.lattice.BranchTips()
	return f.mask(func(c hex.Axial, cell Cell) float32 {
		for _, tip := range tips {
			if c != tip {
				continue
			}
			if cell.Frozen() {
				return 1
			}
			return 0.5
		}
		return 0
	})
}

// EdgeMask marks the lattice border.
func (f *Flake) EdgeMask() []float32 {
	return f.mask(func(c hex.Axial, _ Cell) float32 {
		if f.lattice.IsEdge(c) {
			return 1
		}
		return 0
	})
}

func (f *Flake) mask(fn func(c hex.Axial, cell Cell) float32) []float32 {
	out := make([]float32, len(f.display.Cells()))
	n := f.lattice.size
	for i, c := range f.lattice.coords {
		v := fn(c, f.lattice.cells[i])
		if v == 0 {
			continue
		}
		x, y := c.Doubled(n)
		idx := f.display.Index(x, y)
		out[idx] = v
		out[idx+1] = v
	}
	return out
}
