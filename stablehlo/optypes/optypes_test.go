package optypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToStableHLO(t *testing.T) {
	require.Equal(t, "stablehlo.clamp", Clamp.ToStableHLO())
	require.Equal(t, "stablehlo.transpose", Transpose.ToStableHLO())
	require.Equal(t, "stablehlo.maximum", Max.ToStableHLO())
	require.Equal(t, "func.return", FuncReturn.ToStableHLO())
	require.Equal(t, "stablehlo.custom_call", Proposal.ToStableHLO())

	target, ok := Unsqueeze.CustomCallTarget()
	require.True(t, ok)
	require.Equal(t, "nnhal.unsqueeze", target)
	_, ok = Reshape.CustomCallTarget()
	require.False(t, ok)
}

func TestOpTypeString(t *testing.T) {
	op, err := OpTypeString("transpose")
	require.NoError(t, err)
	require.Equal(t, Transpose, op)
	_, err = OpTypeString("conv")
	require.Error(t, err)
}
