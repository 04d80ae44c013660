package model

import (
	"math"
	"testing"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestModel builds: output = RELU1(input), with an unused constant in a memory pool.
func buildTestModel(t *testing.T) *Model {
	m := &Model{}
	input := m.AddInput(TensorFloat32, 2, 3)
	output := m.AddOutput(TensorFloat32, 2, 3)
	must.M1(AddPoolConstant(m, TensorInt32, []int{2}, int32(7), int32(-8)))
	m.AddOperation(Relu1, []int{input}, []int{output})
	require.NoError(t, m.Validate())
	return m
}

func TestOperandTypes(t *testing.T) {
	assert.True(t, TensorFloat16.IsTensor())
	assert.False(t, Float16.IsTensor())
	assert.Equal(t, dtypes.Float32, TensorFloat32.DType())
	assert.Equal(t, dtypes.Float16, Float16.DType())
	assert.Equal(t, dtypes.Bool, Bool.DType())
	assert.Equal(t, dtypes.Uint8, TensorQuant8Asymm.DType())
	assert.Equal(t, dtypes.InvalidDType, OperandType(100).DType())
	assert.Equal(t, "TensorFloat32", TensorFloat32.String())
	assert.Equal(t, "GenerateProposals", GenerateProposals.String())
	assert.Equal(t, "SubgraphOutput", SubgraphOutput.String())
	opType, err := OperationTypeString("relu1")
	require.NoError(t, err)
	assert.Equal(t, Relu1, opType)
}

func TestModelAccessors(t *testing.T) {
	m := buildTestModel(t)
	operand, err := m.Operand(0)
	require.NoError(t, err)
	assert.Equal(t, SubgraphInput, operand.Lifetime)
	assert.Equal(t, 6, operand.Size())
	assert.Equal(t, 2, operand.Rank())

	_, err = m.Operand(10)
	require.True(t, errors.Is(err, ErrOperandNotFound))
	_, err = m.Operand(-1)
	require.True(t, errors.Is(err, ErrOperandNotFound))

	input, err := m.OperationInput(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, input)
	output, err := m.OperationOutput(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, output)

	_, err = m.OperationInput(0, 1)
	require.True(t, errors.Is(err, ErrOperandNotFound))
	_, err = m.OperationOutput(1, 0)
	require.True(t, errors.Is(err, ErrOperandNotFound))

	assert.Equal(t, -1, (&Operand{Dimensions: []int{2, 0}}).Size(), "unknown dimension")
	assert.Equal(t, 1, (&Operand{}).Size(), "scalar")
}

func TestModelValidate(t *testing.T) {
	m := buildTestModel(t)
	m.Operations[0].Inputs = []int{17}
	require.True(t, errors.Is(m.Validate(), ErrOperandNotFound))

	m = buildTestModel(t)
	m.OutputIndexes = append(m.OutputIndexes, 0)
	require.True(t, errors.Is(m.Validate(), ErrInvalidModel), "model output with input lifetime")

	m = buildTestModel(t)
	m.Operands[2].Location.Length = 100
	require.True(t, errors.Is(m.Validate(), ErrInvalidModel), "constant out of the pool")

	m = buildTestModel(t)
	m.Operands[2].Location = DataLocation{Offset: math.MaxInt, Length: 1}
	require.True(t, errors.Is(m.Validate(), ErrInvalidModel), "offset+length overflows")

	m = buildTestModel(t)
	m.Operands[2].Location = DataLocation{Offset: 4, Length: math.MaxInt}
	require.True(t, errors.Is(m.Validate(), ErrInvalidModel), "length overflows")

	m = buildTestModel(t)
	m.Operands[0].Lifetime = Lifetime(42)
	require.True(t, errors.Is(m.Validate(), ErrInvalidModel))
}
