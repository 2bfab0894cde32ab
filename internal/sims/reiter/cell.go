package reiter

// FreezeThreshold is the accumulated mass at which a cell counts as ice.
const FreezeThreshold = 1.0

// Cell holds the water budget of one hexagon.
type Cell struct {
	// State is the total mass, always U+V after a completed step.
	State float64
	// U is the mobile mass that takes part in diffusion.
	U float64
	// V is the mass retained by receptive cells.
	V float64
	// MeanU is scratch: the neighbour average of U from the first phase.
	MeanU float64
	// Receptive is set when the cell or one of its neighbours is frozen.
	Receptive bool
}

// Frozen reports whether the cell has turned to ice.
func (c Cell) Frozen() bool { return c.State >= FreezeThreshold }

func seedCell() Cell { return Cell{State: 1, V: 1} }

func vaporCell(beta float64) Cell { return Cell{State: beta, U: beta} }
