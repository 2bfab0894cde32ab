package hex

// CellCount returns the number of hexagons in a radius-n hexagon.
func CellCount(n int) int {
	if n < 0 {
		return 0
	}
	return 3*n*n + 3*n + 1
}

// Disk returns every coordinate within radius n of the origin, ordered by
// q then r.
func Disk(n int) []Axial {
	res := make([]Axial, 0, CellCount(n))
	for q := -n; q <= n; q++ {
		for r := max(-n, -q-n); r <= min(n, -q+n); r++ {
			res = append(res, Axial{q, r})
		}
	}
	return res
}

// Spokes returns the six coordinates at distance k along the principal axes,
// one per direction.
func Spokes(k int) [6]Axial {
	var out [6]Axial
	for i, d := range Directions {
		out[i] = d.Mul(k)
	}
	return out
}
