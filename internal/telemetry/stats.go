package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"reiter-ca/internal/hex"
	"reiter-ca/internal/sims/reiter"
)

// StepStats summarises the lattice after one step.
type StepStats struct {
	Step      int `csv:"step"`
	Frozen    int `csv:"frozen"`
	Receptive int `csv:"receptive"`

	// Mass pools; TotalMass = MobileMass + ImmobileMass
	TotalMass    float64 `csv:"total_mass"`
	MobileMass   float64 `csv:"mobile_mass"`
	ImmobileMass float64 `csv:"immobile_mass"`

	MeanVapor float64 `csv:"mean_vapor"` // mean u over cells outside the crystal and its rim
	MaxState  float64 `csv:"max_state"`
	Radius    int     `csv:"radius"` // furthest frozen cell from the seed
}

// Compute gathers StepStats for the lattice as it stands.
func Compute(step int, l *reiter.Lattice) StepStats {
	n := l.Len()
	states := make([]float64, 0, n)
	mobile := make([]float64, 0, n)
	immobile := make([]float64, 0, n)
	vapor := make([]float64, 0, n)

	s := StepStats{Step: step}
	l.Each(func(c hex.Axial, cell reiter.Cell) {
		states = append(states, cell.State)
		mobile = append(mobile, cell.U)
		immobile = append(immobile, cell.V)
		if cell.Receptive {
			s.Receptive++
		} else if !cell.Frozen() {
			vapor = append(vapor, cell.U)
		}
		if cell.Frozen() {
			s.Frozen++
			if d := c.Length(); d > s.Radius {
				s.Radius = d
			}
		}
	})

	s.TotalMass = floats.Sum(states)
	s.MobileMass = floats.Sum(mobile)
	s.ImmobileMass = floats.Sum(immobile)
	if len(states) > 0 {
		s.MaxState = floats.Max(states)
	}
	if len(vapor) > 0 {
		s.MeanVapor = stat.Mean(vapor, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", s.Step),
		slog.Int("frozen", s.Frozen),
		slog.Int("receptive", s.Receptive),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("mobile_mass", s.MobileMass),
		slog.Float64("immobile_mass", s.ImmobileMass),
		slog.Float64("mean_vapor", s.MeanVapor),
		slog.Float64("max_state", s.MaxState),
		slog.Int("radius", s.Radius),
	)
}
