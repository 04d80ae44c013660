package stablehlo

import (
	"io"

	"github.com/gomlx/nnhal/stablehlo/shapes"
)

// Computation holds a rendered StableHLO program, to be compiled by a PJRT plugin.
// It is created with Builder.Build.
type Computation struct {
	Name      string
	StableHLO string

	// Inputs and Outputs are the shapes of the parameters and results of the "main" function.
	Inputs, Outputs []shapes.Shape
}

// WriteTo writes the StableHLO program. It implements io.WriterTo.
func (c *Computation) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.StableHLO)
	return int64(n), err
}
