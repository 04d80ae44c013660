package translator

import (
	"math"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
)

// boundedActivation clamps its input to [lower, upper]: the family of RELU activations.
type boundedActivation struct {
	*operationBase
	lower, upper float64

	// types supported for the input and output.
	types []model.OperandType
}

// newRelu clamps to [0, +Inf).
func newRelu(base *operationBase) operator {
	return &boundedActivation{
		operationBase: base,
		lower:         0,
		upper:         math.Inf(1),
		types:         []model.OperandType{model.TensorFloat32, model.TensorFloat16},
	}
}

// newRelu1 clamps to [-1, 1].
func newRelu1(base *operationBase) operator {
	return &boundedActivation{
		operationBase: base,
		lower:         -1,
		upper:         1,
		types:         []model.OperandType{model.TensorFloat32},
	}
}

// newRelu6 clamps to [0, 6].
func newRelu6(base *operationBase) operator {
	return &boundedActivation{
		operationBase: base,
		lower:         0,
		upper:         6,
		types:         []model.OperandType{model.TensorFloat32, model.TensorFloat16},
	}
}

func (op *boundedActivation) validate() error {
	if err := op.checkArity(1, 1, 1); err != nil {
		return err
	}
	if err := op.checkInputType(0, op.types...); err != nil {
		return err
	}
	input, err := op.inputOperand(0)
	if err != nil {
		return err
	}
	return op.checkOutputType(0, input.Type)
}

func (op *boundedActivation) createNode() (*stablehlo.Value, error) {
	x, err := op.inputNode(0)
	if err != nil {
		return nil, err
	}
	dtype := x.Shape().DType
	lower, err := makeScalar(op.fn, dtype, op.lower)
	if err != nil {
		return nil, err
	}
	upper, err := makeScalar(op.fn, dtype, op.upper)
	if err != nil {
		return nil, err
	}
	output, err := stablehlo.Clamp(lower, x, upper)
	if err != nil {
		return nil, err
	}
	if err := op.registerOutput(0, output); err != nil {
		return nil, err
	}
	return output, nil
}
