package stablehlo

import (
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapeinference"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
)

// unaryOp adds a new unary operation to the function.
func (fn *Function) unaryOp(op optypes.OpType, operand *Value) (*Value, error) {
	if err := fn.checkOperands(op, operand); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.UnaryOp(op, operand.shape)
	if err != nil {
		return nil, err
	}
	return fn.addOp(op, outputShape, operand).Outputs[0], nil
}

// binaryOp adds a new binary operation to the function.
func (fn *Function) binaryOp(op optypes.OpType, lhs, rhs *Value) (*Value, error) {
	if err := fn.checkOperands(op, lhs, rhs); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.BinaryOp(op, lhs.shape, rhs.shape)
	if err != nil {
		return nil, err
	}
	return fn.addOp(op, outputShape, lhs, rhs).Outputs[0], nil
}

// Tanh returns the element-wise hyperbolic tangent of x.
func Tanh(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Tanh, x)
}

// Logistic returns the element-wise sigmoid of x: 1/(1+exp(-x)).
func Logistic(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Logistic, x)
}

// Max returns the element-wise maximum of lhs and rhs. One of them can be a scalar.
func Max(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Max, lhs, rhs)
}

// Min returns the element-wise minimum of lhs and rhs. One of them can be a scalar.
func Min(lhs, rhs *Value) (*Value, error) {
	return lhs.fn.binaryOp(optypes.Min, lhs, rhs)
}

// Clamp returns the minimum(maximum(x, min), max).
//
// The values max and min can either be a scalar or have the same shape as x.
//
// Clamp is not defined for booleans (the semantics would not be clear).
//
// Note: the order of the arguments in StableHLO is different from most ML libraries.
func Clamp(min, x, max *Value) (*Value, error) {
	op := optypes.Clamp
	fn := x.fn
	if err := fn.checkOperands(op, min, x, max); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Clamp(min.shape, x.shape, max.shape)
	if err != nil {
		return nil, err
	}
	return fn.addOp(op, outputShape, min, x, max).Outputs[0], nil
}

// Reshape the operand to the given dimensions.
// The total size of the new shape must match the original shape.
//
// This has no effect on the data, no transposition is performed.
func Reshape(operand *Value, dimensions ...int) (*Value, error) {
	op := optypes.Reshape
	fn := operand.fn
	if err := fn.checkOperands(op, operand); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Reshape(operand.shape, dimensions)
	if err != nil {
		return nil, err
	}
	return fn.addOp(op, outputShape, operand).Outputs[0], nil
}

// Transpose axes of x.
//
// There should be one value in permutation for each axis in x (len(permutation) == rank(x)).
//
// The output will have: output.Shape.Dimension[ii] = x.Shape.Dimension[permutations[i]].
func Transpose(x *Value, permutation ...int) (*Value, error) {
	op := optypes.Transpose
	fn := x.fn
	if err := fn.checkOperands(op, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Transpose(x.shape, permutation)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(op, outputShape, x)
	stmt.Attributes = map[string]any{
		"permutation": append([]int(nil), permutation...),
	}
	return stmt.Outputs[0], nil
}

// Unsqueeze inserts axes of dimension 1 into x, at the positions given by the axes operand.
//
// The axes operand must be a constant (see Function.NewConstant) integer scalar or 1D tensor, since the
// output shape depends on its value. Negative axes are counted from the end of the output rank.
func Unsqueeze(x, axes *Value) (*Value, error) {
	op := optypes.Unsqueeze
	fn := x.fn
	if err := fn.checkOperands(op, x, axes); err != nil {
		return nil, err
	}
	literal := axes.ConstantLiteral()
	if literal == nil {
		return nil, errors.Errorf("Unsqueeze() requires the axes to be a constant, got %s", axes)
	}
	if literal.Shape().Rank() > 1 {
		return nil, errors.Errorf("Unsqueeze() requires the axes to be a scalar or 1D tensor, got %s", literal.Shape())
	}
	axesList, err := literal.Ints()
	if err != nil {
		return nil, errors.WithMessagef(err, "Unsqueeze() axes")
	}
	outputShape, normalized, err := shapeinference.Unsqueeze(x.shape, axesList)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(op, outputShape, x, axes)
	stmt.Attributes = map[string]any{
		"axes": normalized,
	}
	return stmt.Outputs[0], nil
}

// Proposal generates region proposals (bounding boxes) from per-anchor scores and box deltas, followed by
// hard non-max suppression (NMS).
//
// Inputs, in NCHW layout:
//
//   - scores: [batch, numAnchors, height, width]
//   - deltas: [batch, 4*numAnchors, height, width], box deltas (dx, dy, dw, dh) per anchor.
//   - anchors: [numAnchors, 4], the predefined anchors with format [x1, y1, x2, y2].
//   - imageInfo: [batch, 2], size of each image with format [height, width].
//
// It returns rois [batch, 4, numProposals, 1], with the box coordinates [x1, y1, x2, y2] in the channel axis,
// and their scores [batch, 1, numProposals, 1].
func Proposal(scores, deltas, anchors, imageInfo *Value, config ProposalConfig) (rois, roiScores *Value, err error) {
	op := optypes.Proposal
	fn := scores.fn
	if err = fn.checkOperands(op, scores, deltas, anchors, imageInfo); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	var roisShape, roiScoresShape shapes.Shape
	roisShape, roiScoresShape, err = shapeinference.Proposal(scores.shape, deltas.shape, anchors.shape, imageInfo.shape,
		config.PreNMSTopN, config.PostNMSTopN)
	if err != nil {
		return
	}
	stmt := fn.addMultiOp(op, []shapes.Shape{roisShape, roiScoresShape}, []*Value{scores, deltas, anchors, imageInfo})
	stmt.Attributes = config.attributes()
	return stmt.Outputs[0], stmt.Outputs[1], nil
}
