// Package dtypes defines the element types of tensors handled by the backend graph library
// and their mapping to Go types.
package dtypes

import "strings"

// DType is the element type of a tensor in the backend computation graph.
//
// The values follow the numbering of the PJRT primitive types, so they can be handed over
// to a PJRT compiler without conversion.
type DType int32

//go:generate go tool enumer -type=DType dtypes.go

const (
	INVALID DType = iota
	PRED
	S8
	S16
	S32
	S64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
)

// Aliases to the names used by the PJRT API.
const (
	// InvalidDType (an alias for INVALID) represents an invalid (or not set) dtype.
	InvalidDType = INVALID

	// Invalid is an alias for INVALID.
	Invalid = INVALID

	// Bool (an alias for PRED) is used as the output and input of logic operations.
	Bool = PRED

	Int8  = S8
	Int16 = S16
	Int32 = S32
	Int64 = S64

	Uint8  = U8
	Uint16 = U16
	Uint32 = U32
	Uint64 = U64

	Float16 = F16
	Float32 = F32
	Float64 = F64
)

// MapOfNames maps the various spellings of a dtype name to its DType.
// It includes the PJRT names ("F32"), the Go-style names ("Float32") and lower-case versions of both.
var MapOfNames = map[string]DType{}

func init() {
	aliases := map[DType]string{
		PRED: "Bool",
		S8:   "Int8",
		S16:  "Int16",
		S32:  "Int32",
		S64:  "Int64",
		U8:   "Uint8",
		U16:  "Uint16",
		U32:  "Uint32",
		U64:  "Uint64",
		F16:  "Float16",
		F32:  "Float32",
		F64:  "Float64",
	}
	for _, dtype := range DTypeValues() {
		if dtype == INVALID {
			continue
		}
		for _, name := range []string{dtype.String(), aliases[dtype]} {
			MapOfNames[name] = dtype
			MapOfNames[strings.ToLower(name)] = dtype
		}
	}
}
