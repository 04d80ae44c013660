package model

import (
	"bytes"
	"encoding/binary"
	"reflect"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/pkg/errors"
)

// ConstantData returns the raw little-endian encoded value of a constant operand.
// It fails with ErrNotConstant if the operand has no embedded data nor pool reference.
func (m *Model) ConstantData(operandIndex int) ([]byte, error) {
	operand, err := m.Operand(operandIndex)
	if err != nil {
		return nil, err
	}
	switch operand.Lifetime {
	case ConstantCopy:
		return operand.Data, nil
	case ConstantReference:
		return m.poolData(operand.Location)
	}
	return nil, errors.Wrapf(ErrNotConstant, "operand #%d has lifetime %s", operandIndex, operand.Lifetime)
}

// ConstantVector decodes the value of a constant operand as a flat slice of T.
//
// T must be the Go type of the operand type's DType (e.g. float32 for Float32 and TensorFloat32),
// otherwise it fails with ErrTypeMismatch. It fails with ErrNotConstant for non-constant operands.
func ConstantVector[T dtypes.Supported](m *Model, operandIndex int) ([]T, error) {
	operand, err := m.Operand(operandIndex)
	if err != nil {
		return nil, err
	}
	if want := dtypes.FromGoType[T](); operand.Type.DType() != want {
		var t T
		return nil, errors.Wrapf(ErrTypeMismatch, "operand #%d of type %s cannot be read as %T", operandIndex, operand.Type, t)
	}
	data, err := m.ConstantData(operandIndex)
	if err != nil {
		return nil, err
	}
	elementSize := int(reflect.TypeFor[T]().Size())
	if len(data)%elementSize != 0 {
		return nil, errors.Wrapf(ErrInvalidModel, "operand #%d has %d bytes of data, not a multiple of the %s element size %d",
			operandIndex, len(data), operand.Type, elementSize)
	}
	count := len(data) / elementSize
	if size := operand.Size(); operand.Rank() > 0 && size >= 0 && size != count {
		return nil, errors.Wrapf(ErrInvalidModel, "operand #%d has shape %v but data for %d elements",
			operandIndex, operand.Dimensions, count)
	}
	values := make([]T, count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, values); err != nil {
		return nil, errors.Wrapf(err, "decoding operand #%d", operandIndex)
	}
	return values, nil
}

// ParseOperationInput decodes the scalar value of the input slot of an operation, which must be a constant.
//
// It fails with ErrTypeMismatch if T doesn't match the operand type, see ConstantVector.
func ParseOperationInput[T dtypes.Supported](m *Model, opIndex, slot int) (T, error) {
	var value T
	operandIndex, err := m.OperationInput(opIndex, slot)
	if err != nil {
		return value, err
	}
	values, err := ConstantVector[T](m, operandIndex)
	if err != nil {
		return value, errors.WithMessagef(err, "input #%d of operation #%d", slot, opIndex)
	}
	if len(values) != 1 {
		return value, errors.Wrapf(ErrTypeMismatch, "input #%d of operation #%d should be a scalar, got %d values",
			slot, opIndex, len(values))
	}
	return values[0], nil
}

// encodeValues encodes values in little-endian, the format of the constant data.
func encodeValues[T dtypes.Supported](values []T) []byte {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer never fails for fixed size types.
	_ = binary.Write(&buf, binary.LittleEndian, values)
	return buf.Bytes()
}
