package stablehlo

import "github.com/pkg/errors"

var (
	// ErrShapeDataMismatch is returned when the number of elements of a literal doesn't match its shape.
	ErrShapeDataMismatch = errors.New("shape and data size mismatch")

	// ErrDTypeMismatch is returned when the Go type of a literal's data doesn't match the requested dtype.
	ErrDTypeMismatch = errors.New("dtype mismatch")
)
