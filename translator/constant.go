package translator

import (
	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// MakeConstant creates a constant node in fn with the given dtype, dimensions and flat data.
//
// Empty dimensions create a scalar. flat must be a slice of the dtype's Go type (ErrTypeMismatch otherwise)
// with as many elements as the product of the dimensions (ErrShapeDataMismatch otherwise).
func MakeConstant(fn *stablehlo.Function, dtype dtypes.DType, dimensions []int, flat any) (*stablehlo.Value, error) {
	literal, err := stablehlo.NewLiteral(dtype, dimensions, flat)
	if err != nil {
		if errors.Is(err, stablehlo.ErrDTypeMismatch) {
			return nil, errors.Wrapf(ErrTypeMismatch, "%v", err)
		}
		return nil, err
	}
	return fn.NewConstant(literal)
}

// makeScalar creates a scalar constant of the given dtype, converting value to it.
func makeScalar(fn *stablehlo.Function, dtype dtypes.DType, value float64) (*stablehlo.Value, error) {
	literal, err := stablehlo.NewScalarLiteralFromAny(dtype.FromFloat64(value))
	if err != nil {
		return nil, err
	}
	return fn.NewConstant(literal)
}

// constantFromOperand decodes the value of a constant operand and creates the corresponding constant node.
func constantFromOperand(fn *stablehlo.Function, m *model.Model, operandIndex int) (*stablehlo.Value, error) {
	operand, err := m.Operand(operandIndex)
	if err != nil {
		return nil, err
	}
	dtype := operand.Type.DType()
	var flat any
	switch dtype {
	case dtypes.Float32:
		flat, err = model.ConstantVector[float32](m, operandIndex)
	case dtypes.Float16:
		flat, err = model.ConstantVector[float16.Float16](m, operandIndex)
	case dtypes.Int32:
		flat, err = model.ConstantVector[int32](m, operandIndex)
	case dtypes.Uint32:
		flat, err = model.ConstantVector[uint32](m, operandIndex)
	case dtypes.Int16:
		flat, err = model.ConstantVector[int16](m, operandIndex)
	case dtypes.Uint8:
		flat, err = model.ConstantVector[uint8](m, operandIndex)
	case dtypes.Bool:
		flat, err = model.ConstantVector[bool](m, operandIndex)
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "operand #%d has unsupported type %s", operandIndex, operand.Type)
	}
	if err != nil {
		return nil, err
	}
	node, err := MakeConstant(fn, dtype, operand.Dimensions, flat)
	if err != nil {
		return nil, errors.WithMessagef(err, "constant operand #%d", operandIndex)
	}
	return node, nil
}
