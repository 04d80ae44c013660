package model

import "github.com/pkg/errors"

var (
	// ErrOperandNotFound is returned when an operand or operation index is out of range, a sign of a corrupt model.
	ErrOperandNotFound = errors.New("operand not found")

	// ErrNotConstant is returned when reading the value of an operand that has no embedded data nor pool reference.
	ErrNotConstant = errors.New("operand is not a constant")

	// ErrTypeMismatch is returned when the Go type requested doesn't match the operand type.
	ErrTypeMismatch = errors.New("operand type mismatch")

	// ErrInvalidModel is returned for structurally inconsistent models, or malformed encoded models.
	ErrInvalidModel = errors.New("invalid model")
)
