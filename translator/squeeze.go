package translator

import (
	"github.com/gomlx/nnhal/internal/sets"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
)

// squeeze removes axes of dimension 1.
//
// Inputs: 0 the tensor, 1 the optional constant TENSOR_INT32 axes to remove. If omitted, all axes
// of dimension 1 are removed.
type squeeze struct {
	*operationBase
}

func newSqueeze(base *operationBase) operator { return &squeeze{base} }

func (op *squeeze) validate() error {
	if err := op.checkArity(1, 2, 1); err != nil {
		return err
	}
	if err := op.checkInputType(0, tensorTypes...); err != nil {
		return err
	}
	if err := op.checkInputRank(0, 1); err != nil {
		return err
	}
	input, err := op.inputOperand(0)
	if err != nil {
		return err
	}
	if err := op.checkOutputType(0, input.Type); err != nil {
		return err
	}
	if !dimensionsKnown(input) {
		return invalidf("%s requires the input dimensions to be known, got %v", op.op.Type, input.Dimensions)
	}
	if !op.isOmitted(1) {
		if err := op.checkInputType(1, model.TensorInt32); err != nil {
			return err
		}
	}
	_, err = op.outputDimensions(input.Dimensions)
	return invalid(err)
}

// outputDimensions returns the dimensions after removing the squeezed axes.
func (op *squeeze) outputDimensions(dimensions []int) ([]int, error) {
	rank := len(dimensions)
	squeezed := make([]bool, rank)
	if op.isOmitted(1) {
		for axis, dim := range dimensions {
			squeezed[axis] = dim == 1
		}
	} else {
		axes, err := op.constantInt32s(1)
		if err != nil {
			return nil, err
		}
		seen := sets.Make[int](len(axes))
		for _, value := range axes {
			axis := int(value)
			if axis < -rank || axis >= rank {
				return nil, invalidf("axis %d out of range for %s of input with rank %d", axis, op.op.Type, rank)
			}
			if axis < 0 {
				axis += rank
			}
			if !seen.InsertNew(axis) {
				return nil, invalidf("axis %d given more than once to %s", axis, op.op.Type)
			}
			if dimensions[axis] != 1 {
				return nil, invalidf("%s cannot remove axis %d of dimension %d", op.op.Type, axis, dimensions[axis])
			}
			squeezed[axis] = true
		}
	}
	output := make([]int, 0, rank)
	for axis, dim := range dimensions {
		if !squeezed[axis] {
			output = append(output, dim)
		}
	}
	return output, nil
}

func (op *squeeze) createNode() (*stablehlo.Value, error) {
	x, err := op.inputNode(0)
	if err != nil {
		return nil, err
	}
	dimensions, err := op.outputDimensions(x.Shape().Dimensions)
	if err != nil {
		return nil, err
	}
	output, err := stablehlo.Reshape(x, dimensions...)
	if err != nil {
		return nil, err
	}
	if err := op.registerOutput(0, output); err != nil {
		return nil, err
	}
	return output, nil
}
