package translator

import (
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/pkg/errors"
)

// Layout is the order of the axes of a 4D tensor.
type Layout int

//go:generate go tool enumer -type Layout layout.go

const (
	// NHWC is batch, height, width, channels: the native layout of the model.
	NHWC Layout = iota

	// NCHW is batch, channels, height, width: the layout of the backend spatial primitives.
	NCHW
)

// LayoutFromFlag converts the boolean "use NCHW" attribute of spatial operations to a Layout.
func LayoutFromFlag(useNCHW bool) Layout {
	if useNCHW {
		return NCHW
	}
	return NHWC
}

var layoutPermutations = map[[2]Layout][]int{
	{NHWC, NCHW}: {0, 3, 1, 2},
	{NCHW, NHWC}: {0, 2, 3, 1},
}

// ToLayout converts a 4D node from one layout to another.
//
// It returns the node itself if from == to, otherwise it adds one Transpose node.
// It fails with ErrValidation if the node is not 4D.
func ToLayout(node *stablehlo.Value, from, to Layout) (*stablehlo.Value, error) {
	if from == to {
		return node, nil
	}
	if rank := node.Shape().Rank(); rank != 4 {
		return nil, invalidf("layout conversion from %s to %s requires a 4D tensor, got %s", from, to, node.Shape())
	}
	permutation, found := layoutPermutations[[2]Layout{from, to}]
	if !found {
		return nil, errors.Errorf("no conversion from layout %s to %s", from, to)
	}
	return stablehlo.Transpose(node, permutation...)
}
