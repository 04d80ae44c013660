package dtypes

import (
	"math"
	"reflect"

	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// Supported lists the Go types that can be used as tensor elements.
type Supported interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float16.Float16 | float32 | float64
}

// Number excludes bool from Supported.
type Number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float16.Float16 | float32 | float64
}

var goTypes = map[DType]reflect.Type{
	PRED: reflect.TypeOf(false),
	S8:   reflect.TypeOf(int8(0)),
	S16:  reflect.TypeOf(int16(0)),
	S32:  reflect.TypeOf(int32(0)),
	S64:  reflect.TypeOf(int64(0)),
	U8:   reflect.TypeOf(uint8(0)),
	U16:  reflect.TypeOf(uint16(0)),
	U32:  reflect.TypeOf(uint32(0)),
	U64:  reflect.TypeOf(uint64(0)),
	F16:  reflect.TypeOf(float16.Float16(0)),
	F32:  reflect.TypeOf(float32(0)),
	F64:  reflect.TypeOf(float64(0)),
}

// FromGoType returns the DType for the given Go type.
func FromGoType[T Supported]() DType {
	var t T
	return FromAny(t)
}

// FromType returns the DType for the given reflect.Type, or InvalidDType if not supported.
func FromType(t reflect.Type) DType {
	for dtype, goType := range goTypes {
		if goType == t {
			return dtype
		}
	}
	return InvalidDType
}

// FromAny returns the DType of the given value, or InvalidDType if it is not a supported scalar.
// Go's int and uint are assumed to be 64 bits.
func FromAny(value any) DType {
	switch value.(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64, int:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64, uint:
		return Uint64
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return InvalidDType
}

// FromSlice returns the DType of the elements of a flat slice, e.g. []float32, or InvalidDType.
func FromSlice(flat any) DType {
	t := reflect.TypeOf(flat)
	if t == nil || t.Kind() != reflect.Slice {
		return InvalidDType
	}
	return FromType(t.Elem())
}

// GoType returns the Go type used to store one element of the dtype. It returns nil for InvalidDType.
func (dtype DType) GoType() reflect.Type {
	return goTypes[dtype]
}

// Size returns the number of bytes used by one element of the dtype.
func (dtype DType) Size() int {
	t := dtype.GoType()
	if t == nil {
		return 0
	}
	return int(t.Size())
}

// IsFloat returns whether the dtype is a floating point type.
func (dtype DType) IsFloat() bool {
	return dtype == F16 || dtype == F32 || dtype == F64
}

// IsInt returns whether the dtype is a signed or unsigned integer.
func (dtype DType) IsInt() bool {
	switch dtype {
	case S8, S16, S32, S64, U8, U16, U32, U64:
		return true
	}
	return false
}

// IsUnsigned returns whether the dtype is an unsigned integer.
func (dtype DType) IsUnsigned() bool {
	return dtype == U8 || dtype == U16 || dtype == U32 || dtype == U64
}

// HighestValue returns the highest representable value for the dtype, +Inf for floats.
// The value returned has the Go type of the dtype.
func (dtype DType) HighestValue() any {
	switch dtype {
	case PRED:
		return true
	case S8:
		return int8(math.MaxInt8)
	case S16:
		return int16(math.MaxInt16)
	case S32:
		return int32(math.MaxInt32)
	case S64:
		return int64(math.MaxInt64)
	case U8:
		return uint8(math.MaxUint8)
	case U16:
		return uint16(math.MaxUint16)
	case U32:
		return uint32(math.MaxUint32)
	case U64:
		return uint64(math.MaxUint64)
	case F16:
		return float16.Inf(1)
	case F32:
		return math32.Inf(1)
	case F64:
		return math.Inf(1)
	}
	return nil
}

// LowestValue returns the lowest representable value for the dtype, -Inf for floats.
// The value returned has the Go type of the dtype.
func (dtype DType) LowestValue() any {
	switch dtype {
	case PRED:
		return false
	case S8:
		return int8(math.MinInt8)
	case S16:
		return int16(math.MinInt16)
	case S32:
		return int32(math.MinInt32)
	case S64:
		return int64(math.MinInt64)
	case U8:
		return uint8(0)
	case U16:
		return uint16(0)
	case U32:
		return uint32(0)
	case U64:
		return uint64(0)
	case F16:
		return float16.Inf(-1)
	case F32:
		return math32.Inf(-1)
	case F64:
		return math.Inf(-1)
	}
	return nil
}

// FromFloat64 converts value to the Go type of the dtype.
// Used to build scalar constants of arbitrary dtypes, e.g. the bounds of a clamp.
func (dtype DType) FromFloat64(value float64) any {
	switch dtype {
	case PRED:
		return value != 0
	case F16:
		return float16.Fromfloat32(float32(value))
	}
	goType := dtype.GoType()
	if goType == nil {
		return nil
	}
	return reflect.ValueOf(value).Convert(goType).Interface()
}
