package nn

import "errors"

// Common errors.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrBadTopology       = errors.New("topology needs at least two positive layer widths")
	ErrUnknownActivation = errors.New("unknown activation tag")
	ErrBadModelFile      = errors.New("malformed model file")
)
