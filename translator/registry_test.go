package translator

import (
	"testing"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2)
	tmp := m.AddTemporary(model.TensorFloat32, 2)
	y0 := m.AddOutput(model.TensorFloat32, 2)
	y1 := m.AddOutput(model.TensorFloat32, 2)

	fn := stablehlo.New("test").Main()
	node := must.M1(fn.Parameter("x", shapes.Make(dtypes.Float32, 2)))
	other := must.M1(stablehlo.Tanh(node))

	r := NewRegistry(m)
	_, err := r.Output(x)
	require.True(t, errors.Is(err, ErrUnresolvedOperand))
	require.False(t, r.Has(x))

	require.NoError(t, r.RegisterOutput(x, node))
	require.True(t, r.Has(x))
	got, err := r.Output(x)
	require.NoError(t, err)
	assert.Same(t, node, got)

	// Single assignment.
	err = r.RegisterOutput(x, other)
	require.True(t, errors.Is(err, ErrDuplicateOutput))
	got = must.M1(r.Output(x))
	assert.Same(t, node, got, "registered node must not be overwritten")

	// Only model outputs are results.
	err = r.RegisterResult(tmp, other)
	require.True(t, errors.Is(err, ErrValidation))
	require.False(t, r.Has(tmp))
	require.True(t, errors.Is(r.RegisterResult(100, other), ErrOperandNotFound))

	// Results are returned in model output order, and all must be present.
	require.NoError(t, r.RegisterResult(y1, other))
	_, err = r.Results()
	require.True(t, errors.Is(err, ErrUnresolvedOperand))
	require.NoError(t, r.RegisterResult(y0, node))
	results, err := r.Results()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Same(t, node, results[0])
	assert.Same(t, other, results[1])
	assert.True(t, errors.Is(r.RegisterResult(y0, other), ErrDuplicateOutput))

	assert.Equal(t, 3, r.Len())
	resultMap := r.ResultMap()
	assert.Len(t, resultMap, 2)
	delete(resultMap, y0)
	assert.Len(t, r.ResultMap(), 2, "ResultMap must return a copy")

	require.Error(t, r.RegisterOutput(tmp, nil))
}
