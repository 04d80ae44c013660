// Package shapes defines Shape, the element type plus dimensions of a tensor in a StableHLO program.
package shapes

import (
	"fmt"
	"slices"

	"github.com/gomlx/nnhal/dtypes"
)

// Shape is a minimalistic shape representation of a tensor.
//
// It is defined as a DType (the underlying data type, e.g.: Float32, Int64, etc.) and the dimensions on each axis
// of the tensor. If len(Dimensions) is 0, it represents a scalar.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape structure filled with the values given.
// Dimensions are copied.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	return Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
}

// Scalar returns a scalar Shape for the given type.
func Scalar(dtype dtypes.DType) Shape {
	return Shape{DType: dtype}
}

// Invalid returns an invalid shape.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// IsScalar returns whether the Shape is a scalar, i.e. its len(Shape.Dimensions) == 0.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// Rank of a shape is the number of axes. A shortcut to len(Shape.Dimensions).
// Scalar values have rank 0.
func (s Shape) Rank() int {
	return len(s.Dimensions)
}

// Dim returns the dimension of the given axis. Negative axes are counted from the end.
func (s Shape) Dim(axis int) int {
	if axis < 0 {
		axis += s.Rank()
	}
	return s.Dimensions[axis]
}

// Size returns the total size of the shape. E.g.: a Shape of dimensions [3, 5] has size 15. A scalar has size 1.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Memory returns the number of bytes needed to store an array of the given shape.
func (s Shape) Memory() int {
	return s.DType.Size() * s.Size()
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone makes a deep copy of the given shape.
func (s Shape) Clone() (newS Shape) {
	newS.DType = s.DType
	if len(s.Dimensions) > 0 {
		newS.Dimensions = slices.Clone(s.Dimensions)
	}
	return newS
}

// String implements fmt.Stringer and pretty-print the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}
