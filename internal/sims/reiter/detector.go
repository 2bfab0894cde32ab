package reiter

// Reason explains why a Detector reported convergence.
type Reason int

const (
	// ReasonNone means growth is still in progress.
	ReasonNone Reason = iota
	// ReasonBranchTips means all six principal branches reached the boundary.
	ReasonBranchTips
	// ReasonStalled means the frozen-cell count did not change since the
	// previous check.
	ReasonStalled
)

func (r Reason) String() string {
	switch r {
	case ReasonBranchTips:
		return "branch-tips"
	case ReasonStalled:
		return "stalled"
	default:
		return "growing"
	}
}

// Status is the outcome of one Detector check.
type Status struct {
	Converged bool
	Reason    Reason
	// Frozen is the number of frozen cells seen by the check.
	Frozen int
	// Tips is how many of the six branch tips are frozen.
	Tips int
}

// Detector decides when a crystal has stopped growing. It keeps the frozen
// count of the previous check, so it must be consulted exactly once per
// step.
type Detector struct {
	prevFrozen int
	hasPrev    bool
}

// Reset forgets the frozen-count history.
func (d *Detector) Reset() {
	d.prevFrozen = 0
	d.hasPrev = false
}

// HasConverged reports whether the simulation should stop.
func (d *Detector) HasConverged(l *Lattice) bool {
	return d.Check(l).Converged
}

// Check evaluates both stopping conditions and records the frozen count for
// the next call.
func (d *Detector) Check(l *Lattice) Status {
	st := Status{Frozen: l.FrozenCount()}
	for _, tip := range l.BranchTips() {
		if cell, ok := l.Cell(tip); ok && cell.Frozen() {
			st.Tips++
		}
	}

	stalled := d.hasPrev && d.prevFrozen == st.Frozen
	d.prevFrozen = st.Frozen
	d.hasPrev = true

	switch {
	case st.Tips == len(l.BranchTips()):
		st.Converged = true
		st.Reason = ReasonBranchTips
	case stalled:
		st.Converged = true
		st.Reason = ReasonStalled
	}
	return st
}
