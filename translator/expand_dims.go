package translator

import (
	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
)

// tensorTypes are the operand types of the data tensors accepted by the data movement operations.
var tensorTypes = []model.OperandType{
	model.TensorFloat32, model.TensorFloat16, model.TensorInt32, model.TensorQuant8Asymm, model.TensorBool8,
}

// expandDims inserts an axis of dimension 1.
//
// Inputs: 0 the tensor, 1 the INT32 axis, in the range [-(rank+1), rank].
type expandDims struct {
	*operationBase
}

func newExpandDims(base *operationBase) operator { return &expandDims{base} }

func (op *expandDims) validate() error {
	if err := op.checkArity(2, 2, 1); err != nil {
		return err
	}
	if err := op.checkInputType(0, tensorTypes...); err != nil {
		return err
	}
	if err := op.checkInputRank(0, 1); err != nil {
		return err
	}
	if err := op.checkInputType(1, model.Int32); err != nil {
		return err
	}
	input, err := op.inputOperand(0)
	if err != nil {
		return err
	}
	if err := op.checkOutputType(0, input.Type); err != nil {
		return err
	}
	axis, err := op.parseInt32(1)
	if err != nil {
		return invalid(err)
	}
	if rank := int32(input.Rank()); axis < -(rank+1) || axis > rank {
		return invalidf("axis %d out of range for %s of input with rank %d", axis, op.op.Type, rank)
	}
	return nil
}

func (op *expandDims) createNode() (*stablehlo.Value, error) {
	x, err := op.inputNode(0)
	if err != nil {
		return nil, err
	}
	axis, err := op.parseInt32(1)
	if err != nil {
		return nil, err
	}
	axes, err := MakeConstant(op.fn, dtypes.Int32, nil, []int32{axis})
	if err != nil {
		return nil, err
	}
	output, err := stablehlo.Unsqueeze(x, axes)
	if err != nil {
		return nil, err
	}
	if err := op.registerOutput(0, output); err != nil {
		return nil, err
	}
	return output, nil
}
