package translator

import (
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
)

// unary translates element-wise float operations with one input and one output of the same type.
type unary struct {
	*operationBase
	build func(x *stablehlo.Value) (*stablehlo.Value, error)
}

func newLogistic(base *operationBase) operator { return &unary{base, stablehlo.Logistic} }

func newTanh(base *operationBase) operator { return &unary{base, stablehlo.Tanh} }

func (op *unary) validate() error {
	if err := op.checkArity(1, 1, 1); err != nil {
		return err
	}
	if err := op.checkInputType(0, model.TensorFloat32, model.TensorFloat16); err != nil {
		return err
	}
	input, err := op.inputOperand(0)
	if err != nil {
		return err
	}
	return op.checkOutputType(0, input.Type)
}

func (op *unary) createNode() (*stablehlo.Value, error) {
	x, err := op.inputNode(0)
	if err != nil {
		return nil, err
	}
	output, err := op.build(x)
	if err != nil {
		return nil, err
	}
	if err := op.registerOutput(0, output); err != nil {
		return nil, err
	}
	return output, nil
}
