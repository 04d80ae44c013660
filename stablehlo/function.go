package stablehlo

import (
	"fmt"
	"io"
	"regexp"

	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
)

// Function represents a `func.func` in StableHLO.
type Function struct {
	Builder *Builder

	// Name of the function. It should not include the "@" prefix.
	Name string

	// IsPublic marks the function as public, which is rendered as `func.func public @...`
	IsPublic bool

	// Inputs to the function.
	Inputs []*Value

	// Outputs types of the function.
	Outputs []shapes.Shape

	// Statements in the function body.
	Statements []*Statement

	// Returned indicates Return was called, and no more ops can be added.
	Returned bool

	// values holds all the values (e.g. %0, %1, %arg0) created in the function's scope.
	// It works as an arena: values are released together with the function.
	values []*Value
}

var reValidName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Parameter adds a new input to the function with the given name and shape.
//
// The name must be unique among the parameters and composed of letters, digits and underscore.
func (fn *Function) Parameter(name string, shape shapes.Shape) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add parameter %q after returning, in function %q", name, fn.Name)
	}
	if !reValidName.MatchString(name) {
		return nil, errors.Errorf("invalid parameter name %q in function %q, only letters, digits and underscore are accepted",
			name, fn.Name)
	}
	for _, input := range fn.Inputs {
		if input.name == name {
			return nil, errors.Errorf("parameter %q defined more than once in function %q", name, fn.Name)
		}
	}
	if !shape.Ok() {
		return nil, errors.Errorf("invalid shape %s for parameter %q in function %q", shape, name, fn.Name)
	}
	v := fn.newValue(shape)
	v.name = name
	fn.Inputs = append(fn.Inputs, v)
	return v, nil
}

// NewConstant creates a new constant statement holding the literal and returns the resulting value.
func (fn *Function) NewConstant(literal *Literal) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add constant after returning, in function %q", fn.Name)
	}
	if literal == nil {
		return nil, errors.Errorf("nil literal given to NewConstant in function %q", fn.Name)
	}
	stmt := fn.addOp(optypes.Constant, literal.Shape())
	stmt.Attributes = map[string]any{
		"value": literal,
	}
	stmt.Outputs[0].literal = literal
	return stmt.Outputs[0], nil
}

// Return adds a return statement to the function with the given return values.
// No more ops can be added to the function afterward.
func (fn *Function) Return(values ...*Value) error {
	if fn.Returned {
		return errors.Errorf("Return called more than once in function %q", fn.Name)
	}
	for i, value := range values {
		if value.fn != fn {
			return errors.Errorf("return value #%d of function %q belongs to a different function", i, fn.Name)
		}
	}
	outputShapes := make([]shapes.Shape, len(values))
	for i, value := range values {
		outputShapes[i] = value.shape
	}
	fn.Outputs = outputShapes

	stmt := &Statement{
		OpType: optypes.FuncReturn,
		Inputs: values,
	}
	fn.Statements = append(fn.Statements, stmt)
	fn.Returned = true
	return nil
}

// NumValues returns the number of values created so far in the function, including inputs.
func (fn *Function) NumValues() int {
	return len(fn.values)
}

// addOp adds a new operation with one output to the function.
func (fn *Function) addOp(opType optypes.OpType, outputShape shapes.Shape, inputs ...*Value) *Statement {
	stmt := &Statement{
		OpType:  opType,
		Inputs:  inputs,
		Outputs: []*Value{fn.newValue(outputShape)},
	}
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}

// addMultiOp adds a new operation with multiple outputs to the function.
func (fn *Function) addMultiOp(opType optypes.OpType, outputShapes []shapes.Shape, inputs []*Value) *Statement {
	outputs := make([]*Value, len(outputShapes))
	for i, shape := range outputShapes {
		outputs[i] = fn.newValue(shape)
	}
	stmt := &Statement{
		OpType:  opType,
		Inputs:  inputs,
		Outputs: outputs,
	}
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}

// newValue creates a new unique value within the function's scope.
func (fn *Function) newValue(shape shapes.Shape) *Value {
	v := &Value{
		fn:    fn,
		id:    len(fn.values),
		shape: shape,
	}
	fn.values = append(fn.values, v)
	return v
}

// checkOperands verifies that ops can still be added and that the operands belong to the function.
func (fn *Function) checkOperands(op optypes.OpType, operands ...*Value) error {
	if fn.Returned {
		return errors.Errorf("cannot add operation %s after returning, in function %q",
			op, fn.Name)
	}
	for i, operand := range operands {
		if operand == nil {
			return errors.Errorf("operand #%d of operation %s is nil, in function %q", i, op, fn.Name)
		}
		if operand.fn != fn {
			return errors.Errorf("cannot add operation %s to function %q, because operand #%d is not part of the function",
				op, fn.Name, i)
		}
	}
	return nil
}

// Write renders the function in StableHLO text format.
func (fn *Function) Write(w io.Writer) error {
	if _, err := io.WriteString(w, "func.func "); err != nil {
		return err
	}
	if fn.IsPublic {
		if _, err := io.WriteString(w, "public "); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "@%s(", fn.Name); err != nil {
		return err
	}
	for i, input := range fn.Inputs {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := input.Write(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ": %s", input.shape.ToStableHLO()); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ") -> ("); err != nil {
		return err
	}
	for i, output := range fn.Outputs {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, output.ToStableHLO()); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ") {\n"); err != nil {
		return err
	}

	for _, stmt := range fn.Statements {
		if err := stmt.Write(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "}"); err != nil {
		return err
	}
	return nil
}
