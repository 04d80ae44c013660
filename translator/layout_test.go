package translator

import (
	"testing"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutFromFlag(t *testing.T) {
	assert.Equal(t, NCHW, LayoutFromFlag(true))
	assert.Equal(t, NHWC, LayoutFromFlag(false))
	assert.Equal(t, "NHWC", NHWC.String())
	assert.Equal(t, "NCHW", NCHW.String())
}

func TestToLayout(t *testing.T) {
	fn := stablehlo.New("test").Main()
	x := must.M1(fn.Parameter("x", shapes.Make(dtypes.Float32, 1, 1, 2, 3)))

	// Same layout: the node itself, and nothing is added to the graph.
	for _, layout := range []Layout{NHWC, NCHW} {
		same, err := ToLayout(x, layout, layout)
		require.NoError(t, err)
		assert.Same(t, x, same)
	}
	assert.Empty(t, fn.Statements)

	nchw, err := ToLayout(x, NHWC, NCHW)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 1, 2}, nchw.Shape().Dimensions)
	require.Len(t, fn.Statements, 1)
	assert.Equal(t, []int{0, 3, 1, 2}, fn.Statements[0].Attributes["permutation"])

	nhwc, err := ToLayout(nchw, NCHW, NHWC)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 3}, nhwc.Shape().Dimensions)

	require.NoError(t, fn.Return(nchw, nhwc))
	input := []float32{0, 1, 2, 3, 4, 5}
	outputs, err := fn.Evaluate(must.M1(stablehlo.NewArrayLiteral(input, 1, 1, 2, 3)))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, outputs[0].Flat())
	assert.Equal(t, input, outputs[1].Flat(), "round trip must be the identity")
}

func TestToLayout_Not4D(t *testing.T) {
	fn := stablehlo.New("test").Main()
	x := must.M1(fn.Parameter("x", shapes.Make(dtypes.Float32, 2, 3)))
	_, err := ToLayout(x, NHWC, NCHW)
	require.True(t, errors.Is(err, ErrValidation), "got %v", err)

	// Identity doesn't require 4D.
	same, err := ToLayout(x, NCHW, NCHW)
	require.NoError(t, err)
	assert.Same(t, x, same)
}
