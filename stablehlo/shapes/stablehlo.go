package shapes

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gomlx/nnhal/dtypes"
)

// stableHLOElementTypes maps dtypes to the element type names used in StableHLO tensor types.
var stableHLOElementTypes = map[dtypes.DType]string{
	dtypes.Bool:    "i1",
	dtypes.Int8:    "i8",
	dtypes.Int16:   "i16",
	dtypes.Int32:   "i32",
	dtypes.Int64:   "i64",
	dtypes.Uint8:   "ui8",
	dtypes.Uint16:  "ui16",
	dtypes.Uint32:  "ui32",
	dtypes.Uint64:  "ui64",
	dtypes.Float16: "f16",
	dtypes.Float32: "f32",
	dtypes.Float64: "f64",
}

// DTypeToStableHLO returns the StableHLO name of the element type.
func DTypeToStableHLO(dtype dtypes.DType) string {
	if name, found := stableHLOElementTypes[dtype]; found {
		return name
	}
	return fmt.Sprintf("unknown_dtype<%s>", dtype)
}

// ToStableHLO returns the StableHLO tensor type of the shape, e.g. "tensor<2x3xf32>" or "tensor<i32>" for scalars.
func (s Shape) ToStableHLO() string {
	var sb strings.Builder
	sb.WriteString("tensor<")
	for _, dim := range s.Dimensions {
		sb.WriteString(strconv.Itoa(dim))
		sb.WriteByte('x')
	}
	sb.WriteString(DTypeToStableHLO(s.DType))
	sb.WriteByte('>')
	return sb.String()
}

// WriteStableHLO writes the StableHLO tensor type of the shape.
func (s Shape) WriteStableHLO(writer io.Writer) error {
	_, err := io.WriteString(writer, s.ToStableHLO())
	return err
}
