package translator

import (
	"fmt"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/pkg/errors"
)

var (
	// ErrValidation is returned (wrapped) by Operation.Validate when an operation cannot be translated:
	// unsupported type, rank or layout combination, or an attribute that cannot be read.
	// It rejects the model, but it is not a sign of a corrupt model.
	ErrValidation = errors.New("validation failed")

	// ErrUnresolvedOperand is returned when an operand is consumed before being produced.
	ErrUnresolvedOperand = errors.New("unresolved operand")

	// ErrDuplicateOutput is returned when an operand is produced more than once.
	ErrDuplicateOutput = errors.New("duplicate output")

	// ErrUnsupportedOperation is returned for operation types without a translation.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidState is returned when the methods of an Operation are called out of order
	// (Validate, then CreateNode, once each).
	ErrInvalidState = errors.New("invalid operation state")

	// ErrShapeDataMismatch is returned by MakeConstant when the data length doesn't match the shape.
	ErrShapeDataMismatch = stablehlo.ErrShapeDataMismatch

	// ErrTypeMismatch is returned when data or an attribute doesn't have the expected type.
	ErrTypeMismatch = model.ErrTypeMismatch

	// ErrNotConstant is returned when an attribute operand has no constant value.
	ErrNotConstant = model.ErrNotConstant

	// ErrOperandNotFound is returned when an index is out of range: a sign of a corrupt model.
	ErrOperandNotFound = model.ErrOperandNotFound
)

// OperationError is returned by the translation when an operation fails, with the index and type of
// the offending operation.
type OperationError struct {
	Index int
	Type  model.OperationType
	Err   error
}

// Error implements error.
func (e *OperationError) Error() string {
	return fmt.Sprintf("operation #%d (%s): %v", e.Index, e.Type, e.Err)
}

// Unwrap allows errors.Is and errors.As to inspect the underlying error.
func (e *OperationError) Unwrap() error { return e.Err }

// Cause implements github.com/pkg/errors causer interface.
func (e *OperationError) Cause() error { return e.Err }

// validationError marks an error as a validation failure, while keeping the original error in the chain.
type validationError struct {
	err error
}

func (e *validationError) Error() string        { return fmt.Sprintf("%v: %v", ErrValidation, e.err) }
func (e *validationError) Unwrap() error        { return e.err }
func (e *validationError) Is(target error) bool { return target == ErrValidation }

// invalid converts an attribute extraction error into a validation failure.
// Structural errors (ErrOperandNotFound) are returned unchanged.
func invalid(err error) error {
	if err == nil || errors.Is(err, ErrOperandNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &validationError{err: err}
}

// invalidf returns a new validation failure.
func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrValidation, format, args...)
}
