package stablehlo

import (
	"strings"
	"testing"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Simple(t *testing.T) {
	b := New("test_program")
	fn := b.Main()
	x := must.M1(fn.Parameter("x", shapes.Make(dtypes.Float32, 3)))
	lo := must.M1(fn.NewConstant(NewScalarLiteral(float32(-1))))
	hi := must.M1(fn.NewConstant(NewScalarLiteral(float32(1))))
	y, err := Clamp(lo, x, hi)
	require.NoError(t, err)
	require.NoError(t, fn.Return(y))

	comp, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "test_program", comp.Name)
	assert.Contains(t, comp.StableHLO, `func.func public @main(%x: tensor<3xf32>) -> (tensor<3xf32>) {`)
	assert.Contains(t, comp.StableHLO, `%1 = "stablehlo.constant"() {value = dense<-1.000000e+00> : tensor<f32>} : () -> (tensor<f32>)`)
	assert.Contains(t, comp.StableHLO, `%2 = "stablehlo.constant"() {value = dense<1.000000e+00> : tensor<f32>}`)
	assert.Contains(t, comp.StableHLO,
		`%3 = "stablehlo.clamp"(%1, %x, %2) : (tensor<f32>, tensor<3xf32>, tensor<f32>) -> (tensor<3xf32>)`)
	assert.Contains(t, comp.StableHLO, `"func.return"(%3) : (tensor<3xf32>)`)
	assert.Equal(t, 4, fn.NumValues())
	assert.Equal(t, []shapes.Shape{shapes.Make(dtypes.Float32, 3)}, comp.Inputs)
	assert.Equal(t, []shapes.Shape{shapes.Make(dtypes.Float32, 3)}, comp.Outputs)

	var sb strings.Builder
	n, err := comp.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(len(comp.StableHLO)), n)
	assert.Equal(t, comp.StableHLO, sb.String())
}

func TestBuilder_NoMain(t *testing.T) {
	b := New("test_program")
	fn := b.NewFunction("not_main")
	require.False(t, fn.IsPublic)
	require.NoError(t, fn.Return())
	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program must have a main function")
}

func TestBuilder_NotReturned(t *testing.T) {
	b := New("test_program")
	b.Main()
	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must Return")
}

func TestFunction_Parameter(t *testing.T) {
	fn := New("test").Main()
	_, err := fn.Parameter("x", shapes.Make(dtypes.Float32, 2))
	require.NoError(t, err)

	_, err = fn.Parameter("x", shapes.Make(dtypes.Float32, 2))
	require.ErrorContains(t, err, "more than once")

	_, err = fn.Parameter("1x", shapes.Make(dtypes.Float32, 2))
	require.ErrorContains(t, err, "invalid parameter name")

	_, err = fn.Parameter("y", shapes.Invalid())
	require.ErrorContains(t, err, "invalid shape")

	require.NoError(t, fn.Return())
	_, err = fn.Parameter("z", shapes.Make(dtypes.Float32, 2))
	require.ErrorContains(t, err, "after returning")
	require.Error(t, fn.Return(), "Return can only be called once")
}

func TestFunction_CheckOperands(t *testing.T) {
	b := New("test")
	fn1 := b.Main()
	fn2 := b.NewFunction("other")
	x1 := must.M1(fn1.Parameter("x", shapes.Make(dtypes.Float32, 2)))
	x2 := must.M1(fn2.Parameter("x", shapes.Make(dtypes.Float32, 2)))

	_, err := Max(x1, x2)
	require.ErrorContains(t, err, "not part of the function")

	_, err = Clamp(nil, x1, x1)
	require.ErrorContains(t, err, "is nil")

	require.Error(t, fn1.Return(x2), "values from other functions cannot be returned")
	require.NoError(t, fn1.Return(x1))
	_, err = Tanh(x1)
	require.ErrorContains(t, err, "after returning")
}
