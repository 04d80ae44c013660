// Package optypes defines OpType and lists the supported operations.
package optypes

// OpType is an enum of the primitive operations the StableHLO builder supports.
type OpType int

//go:generate go tool enumer -type OpType optypes.go

const (
	Invalid OpType = iota
	Parameter
	Constant
	FuncReturn

	Clamp
	Logistic
	Max
	Min
	Proposal
	Reshape
	Tanh
	Transpose
	Unsqueeze

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

// customCallTargets are the ops that have no StableHLO counterpart and are emitted as
// "stablehlo.custom_call" with a call_target_name, to be lowered by the compiler plugin.
var customCallTargets = map[OpType]string{
	Unsqueeze: "nnhal.unsqueeze",
	Proposal:  "nnhal.proposal",
}

// ToStableHLO returns the name of the operation as used in StableHLO text.
func (op OpType) ToStableHLO() string {
	switch op {
	case FuncReturn:
		return "func.return"
	case Max:
		return "stablehlo.maximum"
	case Min:
		return "stablehlo.minimum"
	}
	if _, found := customCallTargets[op]; found {
		return "stablehlo.custom_call"
	}
	return "stablehlo." + lowerFirst(op.String())
}

// CustomCallTarget returns the call_target_name of ops emitted as custom calls, and whether it is one.
func (op OpType) CustomCallTarget() (string, bool) {
	target, found := customCallTargets[op]
	return target, found
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
