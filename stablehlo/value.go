package stablehlo

import (
	"fmt"
	"io"

	"github.com/gomlx/nnhal/stablehlo/shapes"
)

// Value represents a value in a StableHLO program, like `%0` or `%arg0`.
// It has a name, shape and an optional descriptive name that can contain letters, digits and underscore.
//
// Values are owned by the Function that created them and are immutable.
type Value struct {
	fn    *Function
	id    int
	shape shapes.Shape
	name  string // Optional name composed of letters, digits and underscore

	// literal is set for values created by Function.NewConstant.
	literal *Literal
}

// Shape of the value.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// Function that owns the value.
func (v *Value) Function() *Function {
	return v.fn
}

// ID is the unique index of the value within its Function.
func (v *Value) ID() int {
	return v.id
}

// ConstantLiteral returns the literal of a value created with Function.NewConstant, or nil otherwise.
func (v *Value) ConstantLiteral() *Literal {
	return v.literal
}

// Write writes the value in StableHLO text format to the given writer.
func (v *Value) Write(w io.Writer) error {
	if v.name != "" {
		_, err := fmt.Fprintf(w, "%%%s", v.name)
		return err
	}
	_, err := fmt.Fprintf(w, "%%%d", v.id)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}
