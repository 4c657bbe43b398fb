package tensor

import "errors"

// Common errors.
var (
	// ErrShape reports an invalid shape or a shape mismatch.
	ErrShape = errors.New("tensor: invalid shape")

	// ErrDType reports an unsupported data type or a value that cannot be cast.
	ErrDType = errors.New("tensor: invalid dtype")
)
