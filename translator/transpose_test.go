package translator

import (
	"testing"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transposeModel creates a model with one TRANSPOSE of a [2, 3, 4] input. A nil permutation is omitted.
func transposeModel(permutation []int32, outputDims ...int) *model.Model {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2, 3, 4)
	inputs := []int{x}
	if permutation != nil {
		inputs = append(inputs, must.M1(model.AddConstant(m, model.TensorInt32, []int{len(permutation)}, permutation...)))
	}
	y := m.AddOutput(model.TensorFloat32, outputDims...)
	m.AddOperation(model.Transpose, inputs, []int{y})
	return m
}

func TestTranspose(t *testing.T) {
	input := make([]float32, 24)
	for i := range input {
		input[i] = float32(i)
	}

	translation, err := translate(transposeModel([]int32{1, 0, 2}, 3, 2, 4))
	require.NoError(t, err)
	outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral(input, 2, 3, 4)))
	require.NoError(t, err)
	got := outputs[0].Flat().([]float32)
	// output[j, i, k] = input[i, j, k]
	assert.Equal(t, []float32{0, 1, 2, 3, 12, 13, 14, 15, 4, 5, 6, 7}, got[:12])

	// Omitted permutation reverses the axes.
	translation, err = translate(transposeModel(nil, 4, 3, 2))
	require.NoError(t, err)
	outputs, err = translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral(input, 2, 3, 4)))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, outputs[0].Shape().Dimensions)
	assert.Equal(t, []float32{0, 12, 4, 16, 8, 20, 1, 13}, outputs[0].Flat().([]float32)[:8])
}

func TestTranspose_Validation(t *testing.T) {
	for _, permutation := range [][]int32{{0, 1}, {0, 1, 1}, {0, 1, 3}, {0, 1, 2, 3}, {-1, 0, 1}} {
		op, _ := newTestOperation(t, transposeModel(permutation, 2, 3, 4), 0)
		err := op.Validate()
		assert.Truef(t, errors.Is(err, ErrValidation), "permutation %v: got %v", permutation, err)
	}

	// Output shape not matching.
	_, err := translate(transposeModel([]int32{2, 1, 0}, 2, 3, 4))
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
}
