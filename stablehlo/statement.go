package stablehlo

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
)

// Statement represents a single operation line in StableHLO.
type Statement struct {
	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation.
	Attributes map[string]any

	// Outputs of the operation. It may be nil for operations like func.return.
	Outputs []*Value
}

// elementWriter is implemented by the elements of a statement that know how to render themselves.
type elementWriter interface {
	Write(w io.Writer) error
}

// Write writes a string representation of the statement to the given writer.
// Attributes are written sorted by name.
func (s *Statement) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer)
	}

	// Output values are written first:
	w("  ") // Indentation of functions.
	if len(s.Outputs) > 0 {
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			we(output)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%q(", s.OpType.ToStableHLO())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	w(")")

	// Write attributes:
	attributes := s.Attributes
	if target, isCustomCall := s.OpType.CustomCallTarget(); isCustomCall {
		attributes = make(map[string]any, len(s.Attributes)+1)
		for key, value := range s.Attributes {
			attributes[key] = value
		}
		attributes["call_target_name"] = target
	}
	if len(attributes) > 0 {
		keys := make([]string, 0, len(attributes))
		for key := range attributes {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		w(" {")
		for i, key := range keys {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, literalToStableHLO(attributes[key]))
		}
		w("}")
	}

	// Write signature:
	w(" : (")
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		w(input.shape.ToStableHLO())
	}
	w(")")
	if len(s.Outputs) > 0 {
		w(" -> (")
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w(output.shape.ToStableHLO())
		}
		w(")")
	}

	return err
}

// literalToStableHLO converts a literal value, usually used in attributes, to its StableHLO string representation.
func literalToStableHLO(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float32, float64:
		shape := shapes.Make(dtypes.FromAny(v))
		return fmt.Sprintf("dense<%s> : %s", elementToStableHLO(v), shape.ToStableHLO())
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		shape := shapes.Make(dtypes.FromAny(v))
		return fmt.Sprintf("dense<%d> : %s", v, shape.ToStableHLO())
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []int:
		return arrayToStableHLO("i64", v, func(x int) string { return fmt.Sprintf("%d", x) })
	case []float32:
		return arrayToStableHLO("f32", v, func(x float32) string { return fmt.Sprintf("%e", x) })
	case *Literal:
		return v.String()
	default:
		return fmt.Sprintf("Unknown literal type: %t %#v", v, v)
	}
}

func arrayToStableHLO[T any](elementType string, values []T, format func(T) string) string {
	parts := make([]string, len(values))
	for i, x := range values {
		parts[i] = format(x)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("array<%s>", elementType)
	}
	return fmt.Sprintf("array<%s: %s>", elementType, strings.Join(parts, ", "))
}
