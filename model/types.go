package model

import (
	"github.com/gomlx/nnhal/dtypes"
)

// OperandType is the type of an operand: either a scalar or a tensor of some element type.
// The values follow the NNAPI numbering.
type OperandType int32

//go:generate go tool enumer -type OperandType types.go
//go:generate go tool enumer -type Lifetime types.go
//go:generate go tool enumer -type OperationType types.go

const (
	Float32 OperandType = iota
	Int32
	Uint32
	TensorFloat32
	TensorInt32
	TensorQuant8Asymm
	Bool
	TensorQuant16Symm
	TensorFloat16
	TensorBool8
	Float16
)

// IsTensor returns whether the operand type is a tensor (as opposed to a scalar).
func (t OperandType) IsTensor() bool {
	switch t {
	case TensorFloat32, TensorInt32, TensorQuant8Asymm, TensorQuant16Symm, TensorFloat16, TensorBool8:
		return true
	}
	return false
}

// DType returns the backend element type used to represent values of the operand type.
// Quantized tensors are represented by their storage type.
func (t OperandType) DType() dtypes.DType {
	switch t {
	case Float32, TensorFloat32:
		return dtypes.Float32
	case Int32, TensorInt32:
		return dtypes.Int32
	case Uint32:
		return dtypes.Uint32
	case TensorQuant8Asymm:
		return dtypes.Uint8
	case Bool, TensorBool8:
		return dtypes.Bool
	case TensorQuant16Symm:
		return dtypes.Int16
	case Float16, TensorFloat16:
		return dtypes.Float16
	}
	return dtypes.InvalidDType
}

// Lifetime of an operand: how its value is produced.
type Lifetime int32

const (
	// TemporaryVariable is produced by an operation and consumed by other operations.
	TemporaryVariable Lifetime = iota

	// SubgraphInput is fed by the caller: an input of the model.
	SubgraphInput

	// SubgraphOutput is produced by an operation and returned to the caller: an output of the model.
	SubgraphOutput

	// ConstantCopy has its value embedded in Operand.Data.
	ConstantCopy

	// ConstantReference has its value in one of the memory pools, see Operand.Location.
	ConstantReference

	// NoValue marks an omitted optional input.
	NoValue
)

// OperationType is the kind of an operation.
type OperationType int32

const (
	InvalidOperation OperationType = iota
	ExpandDims
	GenerateProposals
	Logistic
	Relu
	Relu1
	Relu6
	Squeeze
	Tanh
	Transpose
)
