package dtypes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestDType_HighestLowestValues(t *testing.T) {
	require.True(t, math.IsInf(Float64.HighestValue().(float64), 1))
	require.True(t, math.IsInf(float64(Float32.LowestValue().(float32)), -1))
	f16, ok := Float16.HighestValue().(float16.Float16)
	require.True(t, ok)
	require.True(t, f16.IsInf(1))
	require.Equal(t, int32(math.MaxInt32), Int32.HighestValue())
	require.Equal(t, uint8(0), Uint8.LowestValue())
	require.Nil(t, InvalidDType.HighestValue())
}

func TestMapOfNames(t *testing.T) {
	require.Equal(t, Float16, MapOfNames["Float16"])
	require.Equal(t, Float16, MapOfNames["float16"])
	require.Equal(t, Float16, MapOfNames["F16"])
	require.Equal(t, Float16, MapOfNames["f16"])

	require.Equal(t, Bool, MapOfNames["PRED"])
	require.Equal(t, Bool, MapOfNames["bool"])
	_, found := MapOfNames["INVALID"]
	require.False(t, found)
}

func TestGoTypes(t *testing.T) {
	require.Equal(t, Float32, FromGoType[float32]())
	require.Equal(t, Float16, FromGoType[float16.Float16]())
	require.Equal(t, Int64, FromAny(7))
	require.Equal(t, InvalidDType, FromAny("x"))
	require.Equal(t, Int32, FromSlice([]int32{1, 2}))
	require.Equal(t, InvalidDType, FromSlice(int32(1)))
	require.Equal(t, 2, Float16.Size())
	require.Equal(t, 4, Float32.Size())
	require.Equal(t, 0, InvalidDType.Size())
	require.True(t, Float16.IsFloat())
	require.True(t, Uint32.IsUnsigned())
	require.False(t, Bool.IsInt())
}

func TestFromFloat64(t *testing.T) {
	require.Equal(t, float32(6), Float32.FromFloat64(6))
	require.Equal(t, int32(-1), Int32.FromFloat64(-1))
	require.Equal(t, float16.Fromfloat32(0.5), Float16.FromFloat64(0.5))
	require.Equal(t, true, Bool.FromFloat64(1))
}
