package reiter

import (
	"fmt"
	"math"

	"reiter-ca/internal/hex"
)

// Params holds the rates of the Reiter model.
type Params struct {
	// Alpha is the diffusion rate, in [0, 2].
	Alpha float64
	// Beta is the background vapor density.
	Beta float64
	// Gamma is the mass added to every receptive cell per step.
	Gamma float64
}

// Validate rejects non-physical rates.
func (p Params) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"alpha", p.Alpha}, {"beta", p.Beta}, {"gamma", p.Gamma}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfiguration, v.name, v.value)
		}
	}
	if p.Alpha > 2 {
		return fmt.Errorf("%w: alpha must not exceed 2, got %v", ErrInvalidConfiguration, p.Alpha)
	}
	return nil
}

// Background returns the initial vapor density of a non-seed cell. A nil
// Background means the uniform density beta.
type Background func(c hex.Axial) float64

// CellView is a read-only copy of one cell handed to renderers and exporters.
type CellView struct {
	Coord     hex.Axial
	State     float64
	U         float64
	V         float64
	Receptive bool
}

// Lattice owns every cell of a hexagon-shaped region of radius Size. Cells
// are created once and only mutated by an Engine.
type Lattice struct {
	size   int
	params Params

	coords []hex.Axial
	cells  []Cell
	index  map[hex.Axial]int
	// adj holds in-lattice neighbour indices in hex.Directions order.
	adj [][]int
}

// NewLattice builds a lattice of the given radius with the seed frozen at
// the centre and every other cell at vapor density beta.
func NewLattice(size int, p Params) (*Lattice, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalidConfiguration, size)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return build(size, p), nil
}

func build(size int, p Params) *Lattice {
	coords := hex.Disk(size)
	l := &Lattice{
		size:   size,
		params: p,
		coords: coords,
		cells:  make([]Cell, len(coords)),
		index:  make(map[hex.Axial]int, len(coords)),
		adj:    make([][]int, len(coords)),
	}
	for i, c := range coords {
		l.index[c] = i
	}
	for i, c := range coords {
		nbrs := make([]int, 0, 6)
		for _, n := range c.Neighbors() {
			if j, ok := l.index[n]; ok {
				nbrs = append(nbrs, j)
			}
		}
		l.adj[i] = nbrs
	}
	l.reset(nil)
	return l
}

// reset restores the initial condition, drawing background densities from
// bg when it is non-nil.
func (l *Lattice) reset(bg Background) {
	for i, c := range l.coords {
		if c == hex.Origin {
			l.cells[i] = seedCell()
			continue
		}
		beta := l.params.Beta
		if bg != nil {
			beta = bg(c)
		}
		l.cells[i] = vaporCell(beta)
	}
}

// Size returns the lattice radius.
func (l *Lattice) Size() int { return l.size }

// Params returns the model rates.
func (l *Lattice) Params() Params { return l.params }

// Len returns the number of cells.
func (l *Lattice) Len() int { return len(l.cells) }

// Contains reports whether c belongs to the lattice.
func (l *Lattice) Contains(c hex.Axial) bool {
	_, ok := l.index[c]
	return ok
}

// Neighbors returns the in-lattice neighbours of c in hex.Directions order.
// Coordinates outside the lattice have no neighbours.
func (l *Lattice) Neighbors(c hex.Axial) []hex.Axial {
	i, ok := l.index[c]
	if !ok {
		return nil
	}
	out := make([]hex.Axial, len(l.adj[i]))
	for k, j := range l.adj[i] {
		out[k] = l.coords[j]
	}
	return out
}

// IsEdge reports whether c lies on the q or r boundary of the lattice.
func (l *Lattice) IsEdge(c hex.Axial) bool {
	return c.Q == l.size || c.Q == -l.size || c.R == l.size || c.R == -l.size
}

// Cell returns a copy of the cell at c.
func (l *Lattice) Cell(c hex.Axial) (Cell, bool) {
	i, ok := l.index[c]
	if !ok {
		return Cell{}, false
	}
	return l.cells[i], true
}

// Lookup is like Cell but reports a foreign coordinate as an error.
func (l *Lattice) Lookup(c hex.Axial) (Cell, error) {
	cell, ok := l.Cell(c)
	if !ok {
		return Cell{}, fmt.Errorf("%w: %v not in radius %d", ErrCoordinateOutOfRange, c, l.size)
	}
	return cell, nil
}

// Coords returns the lattice coordinates in construction order.
func (l *Lattice) Coords() []hex.Axial {
	return append([]hex.Axial(nil), l.coords...)
}

// Each calls fn for every cell in construction order.
func (l *Lattice) Each(fn func(c hex.Axial, cell Cell)) {
	for i, c := range l.coords {
		fn(c, l.cells[i])
	}
}

// FrozenCount returns the number of cells with State >= 1.
func (l *Lattice) FrozenCount() int {
	n := 0
	for i := range l.cells {
		if l.cells[i].Frozen() {
			n++
		}
	}
	return n
}

// BranchTips returns the six coordinates at distance size-1 along the
// principal axes.
func (l *Lattice) BranchTips() [6]hex.Axial {
	return hex.Spokes(l.size - 1)
}

// Snapshot copies every cell into a read-only view.
func (l *Lattice) Snapshot() []CellView {
	out := make([]CellView, len(l.cells))
	for i, c := range l.coords {
		cell := l.cells[i]
		out[i] = CellView{Coord: c, State: cell.State, U: cell.U, V: cell.V, Receptive: cell.Receptive}
	}
	return out
}

func (l *Lattice) setParams(p Params) { l.params = p }
