package translator

import (
	"testing"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedOperations(t *testing.T) {
	supported := SupportedOperations()
	assert.Equal(t, []model.OperationType{
		model.ExpandDims, model.GenerateProposals, model.Logistic, model.Relu, model.Relu1, model.Relu6,
		model.Squeeze, model.Tanh, model.Transpose,
	}, supported)
	assert.NotContains(t, supported, model.InvalidOperation)
}

func TestOperation_States(t *testing.T) {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2, 2)
	y := m.AddOutput(model.TensorFloat32, 2, 2)
	m.AddOperation(model.Tanh, []int{x}, []int{y})

	// CreateNode before Validate.
	op, fn := newTestOperation(t, m, 0)
	assert.Equal(t, 0, op.Index())
	assert.Equal(t, model.Tanh, op.Type())
	assert.Equal(t, y, op.DefaultOutput())
	_, err := op.CreateNode()
	require.True(t, errors.Is(err, ErrInvalidState), "got %v", err)
	assert.Empty(t, fn.Statements)

	// Validate doesn't change the graph, and can't be repeated.
	require.NoError(t, op.Validate())
	assert.Empty(t, fn.Statements)
	require.True(t, errors.Is(op.Validate(), ErrInvalidState))

	output, err := op.CreateNode()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, output.Shape().Dimensions)
	registry := op.base.registry
	assert.Same(t, output, must.M1(registry.Output(y)))
	assert.Contains(t, registry.ResultMap(), y)

	// CreateNode only once.
	_, err = op.CreateNode()
	require.True(t, errors.Is(err, ErrInvalidState), "got %v", err)
	assert.Len(t, fn.Statements, 1)
}

func TestNewOperation_Errors(t *testing.T) {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2)
	y := m.AddOutput(model.TensorFloat32, 2)
	m.AddOperation(model.InvalidOperation, []int{x}, []int{y})
	m.AddOperation(model.Tanh, []int{x}, nil)

	fn := stablehlo.New("test").Main()
	registry := NewRegistry(m)
	_, err := NewOperation(m, registry, fn, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedOperation), "got %v", err)
	_, err = NewOperation(m, registry, fn, 1)
	assert.True(t, errors.Is(err, ErrOperandNotFound), "operation without outputs: got %v", err)
	_, err = NewOperation(m, registry, fn, 2)
	assert.True(t, errors.Is(err, ErrOperandNotFound), "got %v", err)
}

func TestOperation_ConstantReuse(t *testing.T) {
	// Two operations consuming the same constant operand share its node.
	m := &model.Model{}
	c := must.M1(model.AddConstant(m, model.TensorFloat32, []int{3}, float32(-2), float32(0), float32(2)))
	y0 := m.AddOutput(model.TensorFloat32, 3)
	y1 := m.AddOutput(model.TensorFloat32, 3)
	m.AddOperation(model.Tanh, []int{c}, []int{y0})
	m.AddOperation(model.Relu, []int{c}, []int{y1})

	translation, err := translate(m)
	require.NoError(t, err)
	fn := translation.Function
	// One constant for the operand, and two for the RELU bounds.
	assert.Len(t, statementsOf(fn, optypes.Constant), 3)
	cNode := must.M1(translation.Registry.Output(c))
	assert.Same(t, cNode, statementsOf(fn, optypes.Tanh)[0].Inputs[0])
	assert.Same(t, cNode, statementsOf(fn, optypes.Clamp)[0].Inputs[1])

	outputs, err := fn.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 2}, outputs[1].Flat())
}

func TestOperation_OptionalAndOmittedInputs(t *testing.T) {
	m := &model.Model{}
	x := m.AddInput(model.TensorFloat32, 2, 3)
	omitted := m.AddOmitted(model.TensorInt32)
	y := m.AddOutput(model.TensorFloat32, 3, 2)
	m.AddOperation(model.Transpose, []int{x, omitted}, []int{y})
	omittedFloat := m.AddOmitted(model.TensorFloat32)
	m.AddOperation(model.Tanh, []int{omittedFloat}, []int{m.AddOutput(model.TensorFloat32, 3, 2)})

	op, _ := newTestOperation(t, m, 0)
	require.NoError(t, op.Validate())
	output := must.M1(op.CreateNode())
	assert.Equal(t, []int{3, 2}, output.Shape().Dimensions)

	// A required input with no value.
	_, err := translate(m)
	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, 1, opErr.Index)
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
}
