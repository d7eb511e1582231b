package segprep

import "errors"

var (
	// ErrInvalidDimension indicates a non-positive size, radius, tile or scale,
	// or an inverted [min, max] range.
	ErrInvalidDimension = errors.New("segprep: invalid dimension")
	// ErrShapeMismatch indicates co-registered arrays with different spatial extents.
	ErrShapeMismatch = errors.New("segprep: spatial shape mismatch")
)
