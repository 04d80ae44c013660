package model

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestConstantVector(t *testing.T) {
	m := &Model{}
	f32 := must.M1(AddConstant(m, TensorFloat32, []int{2, 2}, float32(1), float32(-2), float32(3.5), float32(0)))
	i32 := must.M1(AddPoolConstant(m, TensorInt32, []int{3}, int32(-1), int32(0), int32(1<<20)))
	f16 := must.M1(AddConstant(m, Float16, nil, float16.Fromfloat32(0.5)))
	flag := must.M1(AddConstant(m, Bool, nil, true))
	input := m.AddInput(TensorFloat32, 4)

	values, err := ConstantVector[float32](m, f32)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -2, 3.5, 0}, values)

	ints, err := ConstantVector[int32](m, i32)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, 0, 1 << 20}, ints)

	halves, err := ConstantVector[float16.Float16](m, f16)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), halves[0].Float32())

	flags, err := ConstantVector[bool](m, flag)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, flags)

	_, err = ConstantVector[int32](m, f32)
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	_, err = ConstantVector[float32](m, input)
	require.True(t, errors.Is(err, ErrNotConstant), "got %v", err)

	_, err = ConstantVector[float32](m, 100)
	require.True(t, errors.Is(err, ErrOperandNotFound), "got %v", err)

	// Data not matching the shape.
	m.Operands[f32].Dimensions = []int{5}
	_, err = ConstantVector[float32](m, f32)
	require.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)
	m.Operands[f32].Data = m.Operands[f32].Data[:7]
	_, err = ConstantVector[float32](m, f32)
	require.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)
}

func TestParseOperationInput(t *testing.T) {
	m := &Model{}
	x := m.AddInput(TensorFloat32, 2, 3, 4)
	axis := must.M1(AddConstant(m, Int32, nil, int32(1)))
	vector := must.M1(AddConstant(m, TensorInt32, []int{2}, int32(1), int32(2)))
	y := m.AddOutput(TensorFloat32, 2, 1, 3, 4)
	m.AddOperation(ExpandDims, []int{x, axis, vector}, []int{y})

	value, err := ParseOperationInput[int32](m, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), value)

	_, err = ParseOperationInput[float32](m, 0, 1)
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	_, err = ParseOperationInput[int32](m, 0, 2)
	require.True(t, errors.Is(err, ErrTypeMismatch), "vector is not a scalar, got %v", err)

	_, err = ParseOperationInput[float32](m, 0, 0)
	require.True(t, errors.Is(err, ErrNotConstant), "got %v", err)

	_, err = ParseOperationInput[int32](m, 0, 5)
	require.True(t, errors.Is(err, ErrOperandNotFound), "got %v", err)
}

func TestAddConstantErrors(t *testing.T) {
	m := &Model{}
	_, err := AddConstant(m, TensorFloat32, []int{2}, int32(1), int32(2))
	require.True(t, errors.Is(err, ErrTypeMismatch))
	_, err = AddConstant(m, TensorFloat32, []int{3}, float32(1))
	require.Error(t, err)
	_, err = AddConstant(m, Float32, []int{1}, float32(1))
	require.Error(t, err)
	assert.Empty(t, m.Operands)
}
