package translator

import (
	"slices"

	"github.com/gomlx/nnhal/internal/sets"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
)

// transpose permutes the axes of a tensor.
//
// Inputs: 0 the tensor, 1 the optional constant TENSOR_INT32 permutation. If omitted, the axes are reversed.
type transpose struct {
	*operationBase
}

func newTranspose(base *operationBase) operator { return &transpose{base} }

func (op *transpose) validate() error {
	if err := op.checkArity(1, 2, 1); err != nil {
		return err
	}
	if err := op.checkInputType(0, tensorTypes...); err != nil {
		return err
	}
	input, err := op.inputOperand(0)
	if err != nil {
		return err
	}
	if err := op.checkOutputType(0, input.Type); err != nil {
		return err
	}
	if op.isOmitted(1) {
		return nil
	}
	if err := op.checkInputType(1, model.TensorInt32); err != nil {
		return err
	}
	permutation, err := op.permutation(input.Rank())
	if err != nil {
		return invalid(err)
	}
	if len(permutation) != input.Rank() {
		return invalidf("%s of input with rank %d given a permutation of %d axes", op.op.Type, input.Rank(), len(permutation))
	}
	outOfRange := slices.ContainsFunc(permutation, func(axis int) bool { return axis < 0 || axis >= input.Rank() })
	if outOfRange || sets.HasDuplicates(permutation...) {
		return invalidf("%v is not a permutation of the %d axes of the input of %s", permutation, input.Rank(), op.op.Type)
	}
	return nil
}

// permutation returns the permutation input, or the reversed axes if it is omitted.
func (op *transpose) permutation(rank int) ([]int, error) {
	if op.isOmitted(1) {
		permutation := make([]int, rank)
		for axis := range permutation {
			permutation[axis] = rank - 1 - axis
		}
		return permutation, nil
	}
	values, err := op.constantInt32s(1)
	if err != nil {
		return nil, err
	}
	permutation := make([]int, len(values))
	for i, value := range values {
		permutation[i] = int(value)
	}
	return permutation, nil
}

func (op *transpose) createNode() (*stablehlo.Value, error) {
	x, err := op.inputNode(0)
	if err != nil {
		return nil, err
	}
	permutation, err := op.permutation(x.Shape().Rank())
	if err != nil {
		return nil, err
	}
	output, err := stablehlo.Transpose(x, permutation...)
	if err != nil {
		return nil, err
	}
	if err := op.registerOutput(0, output); err != nil {
		return nil, err
	}
	return output, nil
}
