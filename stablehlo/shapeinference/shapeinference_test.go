package shapeinference

import (
	"testing"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	S   = shapes.Make
	F32 = dtypes.Float32
	I32 = dtypes.Int32
)

func TestUnaryOp(t *testing.T) {
	output, err := UnaryOp(optypes.Tanh, S(F32, 2, 3))
	require.NoError(t, err)
	assert.True(t, S(F32, 2, 3).Equal(output))

	_, err = UnaryOp(optypes.Logistic, S(I32, 2))
	require.Error(t, err)
	_, err = UnaryOp(optypes.Transpose, S(F32, 2))
	require.Error(t, err)
}

func TestBinaryOp(t *testing.T) {
	output, err := BinaryOp(optypes.Max, S(F32), S(F32, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, output.Dimensions)

	_, err = BinaryOp(optypes.Min, S(F32, 4), S(I32, 4))
	require.Error(t, err)
	_, err = BinaryOp(optypes.Min, S(F32, 4), S(F32, 5))
	require.Error(t, err)
}

func TestClamp(t *testing.T) {
	output, err := Clamp(S(F32), S(F32, 2, 3), S(F32))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, output.Dimensions)

	_, err = Clamp(S(I32), S(F32, 2, 3), S(F32))
	require.Error(t, err)
	_, err = Clamp(S(F32, 3), S(F32, 2, 3), S(F32))
	require.Error(t, err)
	_, err = Clamp(S(dtypes.Bool), S(dtypes.Bool, 2), S(dtypes.Bool))
	require.Error(t, err)
}

func TestTranspose(t *testing.T) {
	output, err := Transpose(S(F32, 1, 4, 5, 3), []int{0, 3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5}, output.Dimensions)

	_, err = Transpose(S(F32, 1, 4), []int{0})
	require.Error(t, err)
	_, err = Transpose(S(F32, 1, 4), []int{1, 1})
	require.Error(t, err)
	_, err = Transpose(S(F32, 1, 4), []int{0, 2})
	require.Error(t, err)
}

func TestReshape(t *testing.T) {
	output, err := Reshape(S(F32, 2, 1, 3), []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, output.Dimensions)
	_, err = Reshape(S(F32, 2, 3), []int{7})
	require.Error(t, err)
}

func TestUnsqueeze(t *testing.T) {
	output, axes, err := Unsqueeze(S(F32, 2, 3, 4), []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3, 4}, output.Dimensions)
	assert.Equal(t, []int{1}, axes)

	output, axes, err = Unsqueeze(S(F32, 2, 3), []int{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1}, output.Dimensions)
	assert.Equal(t, []int{0, 3}, axes)

	_, _, err = Unsqueeze(S(F32, 2), []int{2})
	require.Error(t, err)
	_, _, err = Unsqueeze(S(F32, 2), []int{0, -2})
	require.Error(t, err)
	_, _, err = Unsqueeze(S(F32, 2), nil)
	require.Error(t, err)
}

func TestProposal(t *testing.T) {
	scores := S(F32, 2, 3, 4, 5)
	deltas := S(F32, 2, 12, 4, 5)
	anchors := S(F32, 3, 4)
	imageInfo := S(F32, 2, 2)

	rois, roiScores, err := Proposal(scores, deltas, anchors, imageInfo, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 60, 1}, rois.Dimensions)
	assert.Equal(t, []int{2, 1, 60, 1}, roiScores.Dimensions)

	rois, _, err = Proposal(scores, deltas, anchors, imageInfo, 30, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 10, 1}, rois.Dimensions)

	_, _, err = Proposal(scores, S(F32, 2, 4, 4, 5), anchors, imageInfo, 0, 0)
	require.Error(t, err)
	_, _, err = Proposal(scores, deltas, S(F32, 3, 2), imageInfo, 0, 0)
	require.Error(t, err)
	_, _, err = Proposal(S(I32, 2, 3, 4, 5), deltas, anchors, imageInfo, 0, 0)
	require.Error(t, err)
}
