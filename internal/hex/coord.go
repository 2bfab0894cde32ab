package hex

import "math"

// Axial identifies a hexagon by its axial coordinates (q, r).
type Axial struct {
	Q int
	R int
}

// Origin is the centre of every lattice.
var Origin = Axial{}

// Directions lists the six neighbour offsets. The order is part of the
// contract: neighbour lists built from it are stable across runs.
//
//	          ___
//	     ___/ 1  \____
//	   / 0  \____/ 2  \
//	   \____/    \____/
//	   / 5  \____/ 3  \
//	   \____/ 4  \____/
//	        \____/
var Directions = [6]Axial{
	{0, -1}, {+1, -1}, {+1, 0}, {0, +1}, {-1, +1}, {-1, 0},
}

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Sub returns a-b in axial space.
func (a Axial) Sub(b Axial) Axial { return Axial{a.Q - b.Q, a.R - b.R} }

// Mul scales an axial vector by k.
func (a Axial) Mul(k int) Axial { return Axial{a.Q * k, a.R * k} }

// S returns the implicit third cube coordinate.
func (a Axial) S() int { return -a.Q - a.R }

// Neighbor returns the adjacent hexagon in direction i (0..5).
func (a Axial) Neighbor(i int) Axial { return a.Add(Directions[((i%6)+6)%6]) }

// Neighbors returns all six adjacent hexagons in Directions order. No
// bounds are applied; lattices filter the result.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = a.Add(d)
	}
	return out
}

// Length is the hex distance from the origin.
func (a Axial) Length() int {
	return max(abs(a.Q), abs(a.R), abs(a.S()))
}

// Distance returns the hex distance between a and b.
func Distance(a, b Axial) int { return a.Sub(b).Length() }

// InRadius reports whether a lies in the hexagon of radius n around the
// origin: |q| <= n, |r| <= n and |q+r| <= n.
func (a Axial) InRadius(n int) bool {
	if n < 0 {
		return false
	}
	return abs(a.Q) <= n && abs(a.R) <= n && abs(a.Q+a.R) <= n
}

// ToPixel converts a to the centre of a pointy-top hexagon of the given
// corner radius, in pixels relative to the origin hexagon.
func (a Axial) ToPixel(size float64) (x, y float64) {
	// pointy-top: x = size*sqrt(3)*(q + r/2); y = size*3/2*r
	x = size * math.Sqrt(3) * (float64(a.Q) + float64(a.R)/2.0)
	y = size * 1.5 * float64(a.R)
	return
}

// Doubled places a in a raster where each hexagon spans two pixels of a
// row, so neighbouring rows interleave like a hex grid. For a radius-n
// lattice the raster is (4n+2) x (2n+1); x is the left pixel of the pair.
func (a Axial) Doubled(n int) (x, y int) {
	return 2*a.Q + a.R + 2*n, a.R + n
}

// DoubledSize returns the raster dimensions used by Doubled.
func DoubledSize(n int) (w, h int) {
	if n < 0 {
		n = 0
	}
	return 4*n + 2, 2*n + 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
