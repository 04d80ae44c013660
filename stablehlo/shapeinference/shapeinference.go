// Package shapeinference calculates the shape resulting from operations, and validates its inputs.
//
// The unary functions don't change the shape. For the remainder ops, it defines one function per OpType.
package shapeinference

import (
	"slices"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/internal/sets"
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
)

var (
	// FloatOperations operates only on float values.
	FloatOperations = sets.MakeWith(
		optypes.Logistic,
		optypes.Tanh,
	)

	// StandardUnaryOperations include all operations that have a single operand as input, and the return shape is the
	// same as the input (so no reductions).
	StandardUnaryOperations = sets.MakeWith(
		optypes.Logistic,
		optypes.Tanh,
	)

	// StandardBinaryOperations include all operations that have two operands usually named lhs (left-hand-side) and
	// rhs (right-hand-side), with the same shape or with one of them being a scalar.
	StandardBinaryOperations = sets.MakeWith(
		optypes.Max,
		optypes.Min,
	)
)

// UnaryOp checks the validity of the data type for StandardUnaryOperations and returns the output shape,
// the same as the operand.
func UnaryOp(opType optypes.OpType, operand shapes.Shape) (output shapes.Shape, err error) {
	if !StandardUnaryOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the StandardUnaryOperations set, cannot process it with UnaryOp", opType)
		return
	}
	if !operand.Ok() {
		err = errors.Errorf("invalid shape %s for operand of %s", operand, opType)
		return
	}
	if FloatOperations.Has(opType) && !operand.DType.IsFloat() {
		err = errors.Errorf("operation %s requires a float operand, got %s", opType, operand)
		return
	}
	return operand.Clone(), nil
}

// BinaryOp returns the expected output shape for the StandardBinaryOperations.
// Operands must have the same dtype, and either the same dimensions or one of them be a scalar.
func BinaryOp(opType optypes.OpType, lhsShape, rhsShape shapes.Shape) (output shapes.Shape, err error) {
	if !StandardBinaryOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the StandardBinaryOperations set, cannot process it with BinaryOp", opType)
		return
	}
	if lhsShape.DType != rhsShape.DType {
		err = errors.Errorf("data types (DType) for %s must match, got %s and %s", opType, lhsShape, rhsShape)
		return
	}
	if lhsShape.DType == dtypes.Bool {
		err = errors.Errorf("operation %s not defined for booleans, got %s", opType, lhsShape)
		return
	}
	switch {
	case lhsShape.IsScalar():
		return rhsShape.Clone(), nil
	case rhsShape.IsScalar():
		return lhsShape.Clone(), nil
	case !slices.Equal(lhsShape.Dimensions, rhsShape.Dimensions):
		err = errors.Errorf("dimensions for %s must match (or one be a scalar), got %s and %s", opType, lhsShape, rhsShape)
		return
	}
	return lhsShape.Clone(), nil
}

// Clamp returns the output shape of a clamp operation: the shape of x.
// The min and max values must be scalars or have the same shape as x, and all must have the same dtype.
func Clamp(minShape, x, maxShape shapes.Shape) (output shapes.Shape, err error) {
	for _, bound := range []shapes.Shape{minShape, maxShape} {
		if bound.DType != x.DType {
			err = errors.Errorf("Clamp() requires bounds with the same dtype as the operand, got min=%s, x=%s, max=%s",
				minShape, x, maxShape)
			return
		}
		if !bound.IsScalar() && !slices.Equal(bound.Dimensions, x.Dimensions) {
			err = errors.Errorf("Clamp() requires bounds to be scalars or have the operand shape, got min=%s, x=%s, max=%s",
				minShape, x, maxShape)
			return
		}
	}
	if x.DType == dtypes.Bool {
		err = errors.Errorf("Clamp() is not defined for booleans, got %s", x)
		return
	}
	return x.Clone(), nil
}

// Reshape to the given dimensions: trivial output shape, but this function also checks
// that the sizes are the same.
func Reshape(operand shapes.Shape, dims []int) (output shapes.Shape, err error) {
	output = shapes.Make(operand.DType, dims...)
	if operand.Size() != output.Size() {
		err = errors.Errorf("Reshape() cannot reshape %s to dimensions %v, their size don't match",
			operand, dims)
		return shapes.Invalid(), err
	}
	return
}

// Transpose all axes of the operand.
// There must be one value in permutations for each axis in the operand.
// The output will have: output.Shape.Dimension[ii] = operand.Shape.Dimension[permutations[i]].
func Transpose(operand shapes.Shape, permutations []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(permutations) != rank {
		err = errors.Errorf("Transpose() requires all axes permutations to be defined, operand has shape %s, but %d permutations were given",
			operand, len(permutations))
		return
	}
	if rank == 0 {
		return operand, nil
	}

	// Check permutation axes are within range and unique.
	axesSet := slices.Clone(permutations)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			err = errors.Errorf("invalid permutation axis %d given to Transpose(%s), it must be within the range of its rank",
				srcAxis, operand)
			return
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			err = errors.Errorf("invalid permutations given to Transpose(%s, %v), there cannot be any repeated axis, each must appear exactly once",
				operand, permutations)
			return
		}
	}

	output = operand.Clone()
	for axis := range output.Dimensions {
		srcAxis := permutations[axis]
		output.Dimensions[axis] = operand.Dimensions[srcAxis]
	}
	return
}

// Unsqueeze inserts axes of dimension 1 at the given positions of the output.
// Negative axes are counted from the end of the output rank. It returns the output shape and the
// normalized (non-negative, sorted) axes.
func Unsqueeze(operand shapes.Shape, axes []int) (output shapes.Shape, normalized []int, err error) {
	if len(axes) == 0 {
		err = errors.Errorf("Unsqueeze(%s) requires at least one axis", operand)
		return
	}
	outputRank := operand.Rank() + len(axes)
	normalized = make([]int, len(axes))
	for ii, axis := range axes {
		if axis < -outputRank || axis >= outputRank {
			err = errors.Errorf("Unsqueeze(%s, %v): axis %d out of range for output rank %d", operand, axes, axis, outputRank)
			return
		}
		if axis < 0 {
			axis += outputRank
		}
		normalized[ii] = axis
	}
	slices.Sort(normalized)
	for ii := 1; ii < len(normalized); ii++ {
		if normalized[ii] == normalized[ii-1] {
			err = errors.Errorf("Unsqueeze(%s, %v): repeated axis %d", operand, axes, normalized[ii])
			return
		}
	}

	output = shapes.Shape{DType: operand.DType, Dimensions: make([]int, outputRank)}
	srcAxis, next := 0, 0
	for axis := range outputRank {
		if next < len(normalized) && normalized[next] == axis {
			output.Dimensions[axis] = 1
			next++
			continue
		}
		output.Dimensions[axis] = operand.Dimensions[srcAxis]
		srcAxis++
	}
	return
}

// Proposal returns the shapes of the outputs of a region proposal operation.
//
// Inputs are given in NCHW layout:
//
//   - scores: [batch, numAnchors, height, width]
//   - deltas: [batch, 4*numAnchors, height, width]
//   - anchors: [numAnchors, 4]
//   - imageInfo: [batch, 2]
//
// The number of proposals per image is numAnchors*height*width, limited by preNMSTopN and postNMSTopN when they
// are positive. The outputs are rois [batch, 4, numProposals, 1] and their scores [batch, 1, numProposals, 1].
func Proposal(scores, deltas, anchors, imageInfo shapes.Shape, preNMSTopN, postNMSTopN int) (rois, roiScores shapes.Shape, err error) {
	if !scores.DType.IsFloat() {
		err = errors.Errorf("Proposal() requires float scores, got %s", scores)
		return
	}
	for _, s := range []shapes.Shape{deltas, anchors, imageInfo} {
		if s.DType != scores.DType {
			err = errors.Errorf("Proposal() requires all inputs with the same dtype, got scores=%s, deltas=%s, anchors=%s, imageInfo=%s",
				scores, deltas, anchors, imageInfo)
			return
		}
	}
	if scores.Rank() != 4 || deltas.Rank() != 4 {
		err = errors.Errorf("Proposal() requires rank-4 scores and deltas, got %s and %s", scores, deltas)
		return
	}
	batch, numAnchors, height, width := scores.Dimensions[0], scores.Dimensions[1], scores.Dimensions[2], scores.Dimensions[3]
	if !slices.Equal(deltas.Dimensions, []int{batch, 4 * numAnchors, height, width}) {
		err = errors.Errorf("Proposal() requires deltas shaped [%d, %d, %d, %d] for scores %s, got %s",
			batch, 4*numAnchors, height, width, scores, deltas)
		return
	}
	if !slices.Equal(anchors.Dimensions, []int{numAnchors, 4}) {
		err = errors.Errorf("Proposal() requires anchors shaped [%d, 4], got %s", numAnchors, anchors)
		return
	}
	if !slices.Equal(imageInfo.Dimensions, []int{batch, 2}) {
		err = errors.Errorf("Proposal() requires imageInfo shaped [%d, 2], got %s", batch, imageInfo)
		return
	}

	numProposals := numAnchors * height * width
	if preNMSTopN > 0 {
		numProposals = min(numProposals, preNMSTopN)
	}
	if postNMSTopN > 0 {
		numProposals = min(numProposals, postNMSTopN)
	}
	rois = shapes.Make(scores.DType, batch, 4, numProposals, 1)
	roiScores = shapes.Make(scores.DType, batch, 1, numProposals, 1)
	return
}
