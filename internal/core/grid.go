package core

// ByteGrid stores a 2D raster of palette indices in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies on the grid.
func (g *ByteGrid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// SetRun writes v into n consecutive cells starting at (x, y), clipped to
// the row.
func (g *ByteGrid) SetRun(x, y, n int, v uint8) {
	if y < 0 || y >= g.H {
		return
	}
	start := max(x, 0)
	end := min(x+n, g.W)
	row := g.data[y*g.W : (y+1)*g.W]
	for i := start; i < end; i++ {
		row[i] = v
	}
}

// Fill sets every cell to v.
func (g *ByteGrid) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}
