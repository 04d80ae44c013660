package model

import (
	"github.com/gomlx/nnhal/dtypes"
	"github.com/pkg/errors"
)

// AddOperand appends the operand to the model and returns its index.
func (m *Model) AddOperand(operand Operand) int {
	m.Operands = append(m.Operands, operand)
	return len(m.Operands) - 1
}

// AddInput adds an operand fed by the caller, and appends it to the model inputs.
func (m *Model) AddInput(operandType OperandType, dimensions ...int) int {
	index := m.AddOperand(Operand{Type: operandType, Dimensions: dimensions, Lifetime: SubgraphInput})
	m.InputIndexes = append(m.InputIndexes, index)
	return index
}

// AddOutput adds an operand returned to the caller, and appends it to the model outputs.
func (m *Model) AddOutput(operandType OperandType, dimensions ...int) int {
	index := m.AddOperand(Operand{Type: operandType, Dimensions: dimensions, Lifetime: SubgraphOutput})
	m.OutputIndexes = append(m.OutputIndexes, index)
	return index
}

// AddTemporary adds an operand produced and consumed by operations.
func (m *Model) AddTemporary(operandType OperandType, dimensions ...int) int {
	return m.AddOperand(Operand{Type: operandType, Dimensions: dimensions, Lifetime: TemporaryVariable})
}

// AddOmitted adds an operand with no value, used for omitted optional inputs.
func (m *Model) AddOmitted(operandType OperandType) int {
	return m.AddOperand(Operand{Type: operandType, Lifetime: NoValue})
}

// AddConstant adds a ConstantCopy operand holding values.
// Scalar operand types take exactly one value, and dimensions must be empty.
func AddConstant[T dtypes.Supported](m *Model, operandType OperandType, dimensions []int, values ...T) (int, error) {
	if want := dtypes.FromGoType[T](); operandType.DType() != want {
		var t T
		return 0, errors.Wrapf(ErrTypeMismatch, "values of type %T given to a constant of type %s", t, operandType)
	}
	size := 1
	for _, dim := range dimensions {
		size *= dim
	}
	if !operandType.IsTensor() && len(dimensions) > 0 {
		return 0, errors.Errorf("scalar operand type %s given dimensions %v", operandType, dimensions)
	}
	if size != len(values) {
		return 0, errors.Errorf("constant of dimensions %v requires %d values, got %d", dimensions, size, len(values))
	}
	return m.AddOperand(Operand{
		Type:       operandType,
		Dimensions: dimensions,
		Lifetime:   ConstantCopy,
		Data:       encodeValues(values),
	}), nil
}

// AddPoolConstant adds a ConstantReference operand, whose values are appended to a new memory pool.
func AddPoolConstant[T dtypes.Supported](m *Model, operandType OperandType, dimensions []int, values ...T) (int, error) {
	index, err := AddConstant(m, operandType, dimensions, values...)
	if err != nil {
		return 0, err
	}
	operand := &m.Operands[index]
	m.Pools = append(m.Pools, operand.Data)
	operand.Location = DataLocation{PoolIndex: len(m.Pools) - 1, Offset: 0, Length: len(operand.Data)}
	operand.Data = nil
	operand.Lifetime = ConstantReference
	return index, nil
}

// AddOperation appends an operation to the model and returns its index.
func (m *Model) AddOperation(operationType OperationType, inputs, outputs []int) int {
	m.Operations = append(m.Operations, Operation{Type: operationType, Inputs: inputs, Outputs: outputs})
	return len(m.Operations) - 1
}
