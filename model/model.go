// Package model holds the operand table of an NNAPI-style model: its operands, the operations
// referencing them by index, and the memory pools holding constant data.
//
// A Model is populated by the ingestion layer (see Unmarshal) or programmatically (see Model.AddInput and
// friends), and afterwards it is only read.
package model

import (
	"github.com/pkg/errors"
)

// DataLocation points to a slice of one of the model's memory pools.
type DataLocation struct {
	PoolIndex, Offset, Length int
}

// Operand is a typed and shaped slot of the model.
type Operand struct {
	Type       OperandType
	Dimensions []int

	// Scale and ZeroPoint are used by quantized types only.
	Scale     float32
	ZeroPoint int32

	Lifetime Lifetime

	// Data holds the little-endian encoded value of ConstantCopy operands.
	Data []byte

	// Location of the value of ConstantReference operands.
	Location DataLocation
}

// IsConstant returns whether the operand value is known at translation time.
func (o *Operand) IsConstant() bool {
	return o.Lifetime == ConstantCopy || o.Lifetime == ConstantReference
}

// Rank of the operand: 0 for scalars.
func (o *Operand) Rank() int {
	return len(o.Dimensions)
}

// Size is the number of elements of the operand, or -1 if some dimension is unknown (0).
func (o *Operand) Size() int {
	size := 1
	for _, dim := range o.Dimensions {
		if dim <= 0 {
			return -1
		}
		size *= dim
	}
	return size
}

// Operation is one occurrence of an operator in the model, referencing its operands by index.
type Operation struct {
	Type    OperationType
	Inputs  []int
	Outputs []int
}

// Model is the operand table and the list of operations, in execution order.
type Model struct {
	Operands   []Operand
	Operations []Operation

	// InputIndexes and OutputIndexes are the operands fed and returned by the caller, in order.
	InputIndexes, OutputIndexes []int

	// Pools of memory holding the values of ConstantReference operands.
	Pools [][]byte
}

// Operand returns the operand of the given index, or an error wrapping ErrOperandNotFound.
func (m *Model) Operand(index int) (*Operand, error) {
	if index < 0 || index >= len(m.Operands) {
		return nil, errors.Wrapf(ErrOperandNotFound, "operand #%d (model has %d operands)", index, len(m.Operands))
	}
	return &m.Operands[index], nil
}

// Operation returns the operation of the given index, or an error wrapping ErrOperandNotFound.
func (m *Model) Operation(opIndex int) (*Operation, error) {
	if opIndex < 0 || opIndex >= len(m.Operations) {
		return nil, errors.Wrapf(ErrOperandNotFound, "operation #%d (model has %d operations)", opIndex, len(m.Operations))
	}
	return &m.Operations[opIndex], nil
}

// OperationInput returns the operand index of the input slot of the operation.
func (m *Model) OperationInput(opIndex, slot int) (int, error) {
	op, err := m.Operation(opIndex)
	if err != nil {
		return 0, err
	}
	if slot < 0 || slot >= len(op.Inputs) {
		return 0, errors.Wrapf(ErrOperandNotFound, "input #%d of operation #%d (%s has %d inputs)",
			slot, opIndex, op.Type, len(op.Inputs))
	}
	return op.Inputs[slot], nil
}

// OperationOutput returns the operand index of the output slot of the operation.
func (m *Model) OperationOutput(opIndex, slot int) (int, error) {
	op, err := m.Operation(opIndex)
	if err != nil {
		return 0, err
	}
	if slot < 0 || slot >= len(op.Outputs) {
		return 0, errors.Wrapf(ErrOperandNotFound, "output #%d of operation #%d (%s has %d outputs)",
			slot, opIndex, op.Type, len(op.Outputs))
	}
	return op.Outputs[slot], nil
}

// Validate the structure of the model: all indexes in range, constant data within the pools, and
// model inputs and outputs with the matching lifetimes.
// It doesn't check whether operations are supported or their operands well-typed, that is left
// to the translation of each operation.
func (m *Model) Validate() error {
	inRange := func(index int) bool { return index >= 0 && index < len(m.Operands) }
	for opIndex, op := range m.Operations {
		for slot, index := range op.Inputs {
			if !inRange(index) {
				return errors.Wrapf(ErrOperandNotFound, "operand #%d referenced by input #%d of operation #%d (model has %d operands)",
					index, slot, opIndex, len(m.Operands))
			}
		}
		for slot, index := range op.Outputs {
			if !inRange(index) {
				return errors.Wrapf(ErrOperandNotFound, "operand #%d referenced by output #%d of operation #%d (model has %d operands)",
					index, slot, opIndex, len(m.Operands))
			}
		}
	}
	for i, index := range m.InputIndexes {
		if !inRange(index) {
			return errors.Wrapf(ErrOperandNotFound, "operand #%d referenced by model input #%d", index, i)
		}
		if lifetime := m.Operands[index].Lifetime; lifetime != SubgraphInput {
			return errors.Wrapf(ErrInvalidModel, "model input #%d is operand #%d with lifetime %s", i, index, lifetime)
		}
	}
	for i, index := range m.OutputIndexes {
		if !inRange(index) {
			return errors.Wrapf(ErrOperandNotFound, "operand #%d referenced by model output #%d", index, i)
		}
		if lifetime := m.Operands[index].Lifetime; lifetime != SubgraphOutput {
			return errors.Wrapf(ErrInvalidModel, "model output #%d is operand #%d with lifetime %s", i, index, lifetime)
		}
	}
	for index := range m.Operands {
		operand := &m.Operands[index]
		if !operand.Type.IsAOperandType() || !operand.Lifetime.IsALifetime() {
			return errors.Wrapf(ErrInvalidModel, "operand #%d has invalid type %s or lifetime %s",
				index, operand.Type, operand.Lifetime)
		}
		if operand.Lifetime == ConstantReference {
			if _, err := m.poolData(operand.Location); err != nil {
				return errors.WithMessagef(err, "operand #%d", index)
			}
		}
	}
	return nil
}

// poolData returns the slice of the pool pointed by location.
func (m *Model) poolData(location DataLocation) ([]byte, error) {
	if location.PoolIndex < 0 || location.PoolIndex >= len(m.Pools) {
		return nil, errors.Wrapf(ErrInvalidModel, "memory pool #%d referenced, but model has %d pools",
			location.PoolIndex, len(m.Pools))
	}
	pool := m.Pools[location.PoolIndex]
	if location.Offset < 0 || location.Length < 0 || location.Offset > len(pool) || location.Length > len(pool)-location.Offset {
		return nil, errors.Wrapf(ErrInvalidModel, "location (offset=%d, length=%d) out of range of memory pool #%d of %d bytes",
			location.Offset, location.Length, location.PoolIndex, len(pool))
	}
	return pool[location.Offset : location.Offset+location.Length], nil
}
