package translator

import (
	"math"
	"testing"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// activationModel creates a model with one activation of the given type, on an input of dimension n.
func activationModel(opType model.OperationType, operandType model.OperandType, n int) *model.Model {
	m := &model.Model{}
	x := m.AddInput(operandType, n)
	y := m.AddOutput(operandType, n)
	m.AddOperation(opType, []int{x}, []int{y})
	return m
}

func TestBoundedActivations(t *testing.T) {
	input := []float32{-7, -1.5, -1, -0.25, 0, 0.5, 1, 2, 6, 8}
	for _, tc := range []struct {
		opType model.OperationType
		want   []float32
	}{
		{model.Relu, []float32{0, 0, 0, 0, 0, 0.5, 1, 2, 6, 8}},
		{model.Relu1, []float32{-1, -1, -1, -0.25, 0, 0.5, 1, 1, 1, 1}},
		{model.Relu6, []float32{0, 0, 0, 0, 0, 0.5, 1, 2, 6, 6}},
	} {
		translation, err := translate(activationModel(tc.opType, model.TensorFloat32, len(input)))
		require.NoErrorf(t, err, "%s", tc.opType)
		outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral(input)))
		require.NoError(t, err)
		assert.Equalf(t, tc.want, outputs[0].Flat(), "%s", tc.opType)
	}
}

func TestRelu_Unbounded(t *testing.T) {
	translation, err := translate(activationModel(model.Relu, model.TensorFloat32, 3))
	require.NoError(t, err)
	assert.Contains(t, translation.Computation.StableHLO, "dense<0x7F800000> : tensor<f32>")
	huge := float32(math.MaxFloat32)
	outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral([]float32{-huge, 1e30, huge})))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1e30, huge}, outputs[0].Flat())
}

func TestBoundedActivations_Float16(t *testing.T) {
	halves := func(values ...float32) []float16.Float16 {
		result := make([]float16.Float16, len(values))
		for i, v := range values {
			result[i] = float16.Fromfloat32(v)
		}
		return result
	}
	translation, err := translate(activationModel(model.Relu6, model.TensorFloat16, 4))
	require.NoError(t, err)
	outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral(halves(-1, 0.5, 6, 10))))
	require.NoError(t, err)
	assert.Equal(t, halves(0, 0.5, 6, 6), outputs[0].Flat())

	_, err = translate(activationModel(model.Relu, model.TensorFloat16, 4))
	require.NoError(t, err)
	_, err = translate(activationModel(model.Relu1, model.TensorFloat16, 4))
	assert.True(t, errors.Is(err, ErrValidation), "RELU1 supports only float32: got %v", err)
}

func TestBoundedActivations_Validation(t *testing.T) {
	for _, opType := range []model.OperationType{model.Relu, model.Relu1, model.Relu6} {
		// Integer input.
		op, fn := newTestOperation(t, activationModel(opType, model.TensorInt32, 4), 0)
		err := op.Validate()
		assert.Truef(t, errors.Is(err, ErrValidation), "%s: got %v", opType, err)
		_, err = op.CreateNode()
		assert.True(t, errors.Is(err, ErrInvalidState))
		assert.Empty(t, fn.Statements)

		// Output type differs from the input.
		m := &model.Model{}
		x := m.AddInput(model.TensorFloat32, 2)
		y := m.AddOutput(model.TensorFloat16, 2)
		m.AddOperation(opType, []int{x}, []int{y})
		op, _ = newTestOperation(t, m, 0)
		assert.Truef(t, errors.Is(op.Validate(), ErrValidation), "%s", opType)

		// Too many inputs.
		m = &model.Model{}
		x = m.AddInput(model.TensorFloat32, 2)
		y = m.AddOutput(model.TensorFloat32, 2)
		m.AddOperation(opType, []int{x, x}, []int{y})
		op, _ = newTestOperation(t, m, 0)
		assert.Truef(t, errors.Is(op.Validate(), ErrValidation), "%s", opType)
	}
}

func TestRelu1_Matrix(t *testing.T) {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2, 3)
	y := m.AddOutput(model.TensorFloat32, 2, 3)
	m.AddOperation(model.Relu1, []int{x}, []int{y})
	translation, err := translate(m)
	require.NoError(t, err)
	outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral([]float32{-5, 0, 2, -1, 1, 5}, 2, 3)))
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0, 1, -1, 1, 1}, outputs[0].Flat())
	assert.Equal(t, []int{2, 3}, outputs[0].Shape().Dimensions)
}
