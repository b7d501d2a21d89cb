package dynamo

import "errors"

// Domain errors for solver and rendering operations.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrEmptyData indicates a sample slice with no elements.
	ErrEmptyData = errors.New("dynamo: empty sample data")

	// ErrDimensionMismatch indicates the hy/ex length relation was broken.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between ex and hy")
)
