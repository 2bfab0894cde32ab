package reiter

import "errors"

var (
	// ErrInvalidConfiguration reports a lattice size or rate that makes the
	// recurrence meaningless.
	ErrInvalidConfiguration = errors.New("reiter: invalid configuration")
	// ErrCoordinateOutOfRange reports a coordinate that is not part of the
	// lattice.
	ErrCoordinateOutOfRange = errors.New("reiter: coordinate out of range")
)
