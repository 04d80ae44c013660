package model

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoding(t *testing.T) {
	m := &Model{}
	x := m.AddInput(TensorFloat32, 1, 4, 4, 3)
	axis := must.M1(AddConstant(m, Int32, nil, int32(-1)))
	perm := must.M1(AddPoolConstant(m, TensorInt32, []int{4}, int32(0), int32(3), int32(1), int32(2)))
	tmp := m.AddTemporary(TensorFloat32, 1, 3, 4, 4)
	omitted := m.AddOmitted(TensorInt32)
	y := m.AddOutput(TensorFloat32, 1, 3, 4, 4, 1)
	m.Operands[x].Scale = 0.25
	m.Operands[x].ZeroPoint = -3
	m.AddOperation(Transpose, []int{x, perm}, []int{tmp})
	m.AddOperation(ExpandDims, []int{tmp, axis, omitted}, []int{y})

	data, err := m.MarshalBinary()
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)

	values, err := ConstantVector[int32](decoded, perm)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 3, 1, 2}, values)
}

func TestEncodingErrors(t *testing.T) {
	_, err := Unmarshal([]byte{0xff})
	require.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)

	// Operand (field 1) with a truncated length.
	_, err = Unmarshal([]byte{0x0a, 0x10, 0x08})
	require.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)

	// Output index referencing a missing operand.
	m := &Model{OutputIndexes: []int{3}}
	data := must.M1(m.MarshalBinary())
	_, err = Unmarshal(data)
	require.True(t, errors.Is(err, ErrOperandNotFound), "got %v", err)

	// Constant location whose end overflows int.
	m = buildTestModel(t)
	m.Operands[2].Location = DataLocation{Offset: math.MaxInt, Length: 1}
	data = must.M1(m.MarshalBinary())
	require.NotPanics(t, func() {
		_, err = Unmarshal(data)
	})
	require.True(t, errors.Is(err, ErrInvalidModel), "got %v", err)

	// Unknown fields are skipped.
	m = &Model{}
	m.AddInput(TensorFloat32, 2)
	data = must.M1(m.MarshalBinary())
	data = append(data, 0x78, 0x01) // field 15, varint 1
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}
