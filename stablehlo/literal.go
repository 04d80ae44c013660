package stablehlo

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Literal defines a constant value for the graph, and is treated as immutable.
//
// The values are stored flat, in row-major order, in a Go slice of the dtype's Go type.
type Literal struct {
	shape shapes.Shape
	flat  any
}

// NewLiteral creates a Literal of the given dtype and dimensions from flat data.
//
// flat must be a slice of the Go type of dtype (e.g. []float32 for dtypes.Float32), and it
// must have as many elements as the product of dimensions (1 for scalars, when dimensions is empty).
// The data is copied.
func NewLiteral(dtype dtypes.DType, dimensions []int, flat any) (*Literal, error) {
	if dtype == dtypes.InvalidDType {
		return nil, errors.New("NewLiteral requires a valid dtype")
	}
	for _, dim := range dimensions {
		if dim < 0 {
			return nil, errors.Errorf("NewLiteral got negative dimensions %v", dimensions)
		}
	}
	if flatDType := dtypes.FromSlice(flat); flatDType != dtype {
		return nil, errors.Wrapf(ErrDTypeMismatch, "NewLiteral(dtype=%s) got flat data of type %T", dtype, flat)
	}
	shape := shapes.Make(dtype, dimensions...)
	flatV := reflect.ValueOf(flat)
	if flatV.Len() != shape.Size() {
		return nil, errors.Wrapf(ErrShapeDataMismatch, "NewLiteral got a slice of length %d, but the shape %s given has %d elements",
			flatV.Len(), shape, shape.Size())
	}
	flatCopy := reflect.MakeSlice(flatV.Type(), flatV.Len(), flatV.Len())
	reflect.Copy(flatCopy, flatV)
	return &Literal{shape: shape, flat: flatCopy.Interface()}, nil
}

// NewArrayLiteral creates a Literal initialized from the array flat data (a slice) and the dimensions of the array.
//
// If dimensions is omitted, it is assumed to represent a 1D-array of the length given.
func NewArrayLiteral[T dtypes.Supported](flat []T, dimensions ...int) (*Literal, error) {
	if len(dimensions) == 0 {
		dimensions = []int{len(flat)}
	}
	return NewLiteral(dtypes.FromGoType[T](), dimensions, flat)
}

// NewScalarLiteral creates a scalar Literal initialized with the given value.
func NewScalarLiteral[T dtypes.Supported](value T) *Literal {
	return &Literal{shape: shapes.Make(dtypes.FromGoType[T]()), flat: []T{value}}
}

// NewScalarLiteralFromAny creates a scalar Literal with the given dynamically typed value.
func NewScalarLiteralFromAny(value any) (*Literal, error) {
	dtype := dtypes.FromAny(value)
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported scalar value type %T", value)
	}
	valueOf := reflect.ValueOf(value).Convert(dtype.GoType())
	flat := reflect.MakeSlice(reflect.SliceOf(dtype.GoType()), 1, 1)
	flat.Index(0).Set(valueOf)
	return &Literal{shape: shapes.Make(dtype), flat: flat.Interface()}, nil
}

// Shape of the literal.
func (l *Literal) Shape() shapes.Shape {
	return l.shape
}

// Flat returns the flat data of the literal, a slice of the dtype's Go type. It must not be modified.
func (l *Literal) Flat() any {
	return l.flat
}

// Value returns the value of a scalar literal, or the first element of an array.
func (l *Literal) Value() any {
	flatV := reflect.ValueOf(l.flat)
	if flatV.Len() == 0 {
		return nil
	}
	return flatV.Index(0).Interface()
}

// LiteralFlat returns the flat data of the literal as []T.
func LiteralFlat[T dtypes.Supported](l *Literal) ([]T, error) {
	flat, ok := l.flat.([]T)
	if !ok {
		var t T
		return nil, errors.Wrapf(ErrDTypeMismatch, "literal of shape %s cannot be read as %T", l.shape, t)
	}
	return flat, nil
}

// Ints returns the values of an integer literal converted to int.
func (l *Literal) Ints() ([]int, error) {
	if !l.shape.DType.IsInt() {
		return nil, errors.Wrapf(ErrDTypeMismatch, "literal of shape %s is not an integer", l.shape)
	}
	flatV := reflect.ValueOf(l.flat)
	ints := make([]int, flatV.Len())
	for i := range ints {
		elem := flatV.Index(i)
		if l.shape.DType.IsUnsigned() {
			ints[i] = int(elem.Uint())
		} else {
			ints[i] = int(elem.Int())
		}
	}
	return ints, nil
}

// WriteStableHLO writes the literal as a StableHLO dense attribute, e.g.: `dense<[1, 2]> : tensor<2xi32>`.
func (l *Literal) WriteStableHLO(w io.Writer) error {
	var sb strings.Builder
	flatV := reflect.ValueOf(l.flat)
	pos := 0
	var writeAxis func(axis int)
	writeAxis = func(axis int) {
		if axis == l.shape.Rank() {
			sb.WriteString(elementToStableHLO(flatV.Index(pos).Interface()))
			pos++
			return
		}
		sb.WriteString("[")
		for i := range l.shape.Dimensions[axis] {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeAxis(axis + 1)
		}
		sb.WriteString("]")
	}
	writeAxis(0)
	_, err := fmt.Fprintf(w, "dense<%s> : %s", sb.String(), l.shape.ToStableHLO())
	return err
}

// String implements fmt.Stringer.
func (l *Literal) String() string {
	var sb strings.Builder
	_ = l.WriteStableHLO(&sb)
	return sb.String()
}

func elementToStableHLO(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float16.Float16:
		if v.IsInf(0) || v.IsNaN() {
			return fmt.Sprintf("0x%04X", v.Bits())
		}
		return fmt.Sprintf("%e", v.Float32())
	case float32:
		if math32.IsInf(v, 0) || math32.IsNaN(v) {
			return fmt.Sprintf("0x%08X", math.Float32bits(v))
		}
		return fmt.Sprintf("%e", v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Sprintf("0x%016X", math.Float64bits(v))
		}
		return fmt.Sprintf("%e", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}
