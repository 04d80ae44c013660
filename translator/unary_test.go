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
)

func TestUnary(t *testing.T) {
	input := []float32{-2, 0, 3}
	for _, tc := range []struct {
		opType model.OperationType
		fn     func(float64) float64
	}{
		{model.Tanh, math.Tanh},
		{model.Logistic, func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
	} {
		translation, err := translate(activationModel(tc.opType, model.TensorFloat32, len(input)))
		require.NoErrorf(t, err, "%s", tc.opType)
		outputs, err := translation.Function.Evaluate(must.M1(stablehlo.NewArrayLiteral(input)))
		require.NoError(t, err)
		got := outputs[0].Flat().([]float32)
		for i, x := range input {
			assert.InDeltaf(t, tc.fn(float64(x)), float64(got[i]), 1e-6, "%s(%g)", tc.opType, x)
		}
	}
}

func TestUnary_Validation(t *testing.T) {
	for _, opType := range []model.OperationType{model.Tanh, model.Logistic} {
		_, err := translate(activationModel(opType, model.TensorInt32, 2))
		assert.Truef(t, errors.Is(err, ErrValidation), "%s: got %v", opType, err)
		_, err = translate(activationModel(opType, model.TensorFloat16, 2))
		assert.NoErrorf(t, err, "%s", opType)
	}
}
