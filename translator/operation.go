package translator

import (
	"slices"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// operator is implemented by the translation of each supported operation type.
type operator interface {
	// validate checks the operation preconditions without adding nodes to the graph.
	validate() error

	// createNode adds the nodes of the operation to the graph, registers its outputs, and returns the node
	// of the default output.
	createNode() (*stablehlo.Value, error)
}

// operationConstructors maps each supported operation type to the constructor of its translation.
var operationConstructors = map[model.OperationType]func(base *operationBase) operator{
	model.ExpandDims:        newExpandDims,
	model.GenerateProposals: newGenerateProposals,
	model.Logistic:          newLogistic,
	model.Relu:              newRelu,
	model.Relu1:             newRelu1,
	model.Relu6:             newRelu6,
	model.Squeeze:           newSqueeze,
	model.Tanh:              newTanh,
	model.Transpose:         newTranspose,
}

// SupportedOperations returns the operation types that can be translated, sorted.
func SupportedOperations() []model.OperationType {
	types := make([]model.OperationType, 0, len(operationConstructors))
	for opType := range operationConstructors {
		types = append(types, opType)
	}
	slices.Sort(types)
	return types
}

type operationState int

const (
	stateConstructed operationState = iota
	stateValidated
	stateBuilt
)

// Operation is the translation of one operation of the model.
//
// Its methods must be called in order: Validate, and if it succeeds, CreateNode, once each.
type Operation struct {
	base  *operationBase
	impl  operator
	state operationState
}

// NewOperation creates the translation of the operation opIndex of m, whose nodes are added to fn and
// whose inputs and outputs are resolved with registry.
//
// It fails with ErrUnsupportedOperation if the operation type has no translation.
func NewOperation(m *model.Model, registry *Registry, fn *stablehlo.Function, opIndex int) (*Operation, error) {
	op, err := m.Operation(opIndex)
	if err != nil {
		return nil, err
	}
	constructor, found := operationConstructors[op.Type]
	if !found {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "operation #%d has type %s", opIndex, op.Type)
	}
	defaultOutput, err := m.OperationOutput(opIndex, 0)
	if err != nil {
		return nil, err
	}
	base := &operationBase{
		model:         m,
		registry:      registry,
		fn:            fn,
		index:         opIndex,
		op:            op,
		defaultOutput: defaultOutput,
	}
	return &Operation{base: base, impl: constructor(base)}, nil
}

// Index of the operation in the model.
func (o *Operation) Index() int { return o.base.index }

// Type of the operation.
func (o *Operation) Type() model.OperationType { return o.base.op.Type }

// DefaultOutput is the operand index of the first output of the operation.
func (o *Operation) DefaultOutput() int { return o.base.defaultOutput }

// Validate checks that the operation can be translated, without changing the graph.
//
// It returns nil if it can, or an error wrapping ErrValidation otherwise. Structural problems of the
// model are returned as other errors (e.g. ErrOperandNotFound).
func (o *Operation) Validate() error {
	if o.state != stateConstructed {
		return errors.Wrapf(ErrInvalidState, "Validate called twice for operation #%d (%s)", o.base.index, o.base.op.Type)
	}
	if err := o.impl.validate(); err != nil {
		return err
	}
	o.state = stateValidated
	return nil
}

// CreateNode adds the nodes translating the operation to the graph, and registers its outputs in the
// registry (and in the result set for model outputs).
// It returns the node of the default output.
func (o *Operation) CreateNode() (*stablehlo.Value, error) {
	if o.state != stateValidated {
		return nil, errors.Wrapf(ErrInvalidState, "CreateNode for operation #%d (%s) requires a successful Validate and can only be called once",
			o.base.index, o.base.op.Type)
	}
	o.state = stateBuilt
	return o.impl.createNode()
}

// operationBase holds the context of an operation translation and the helpers shared by all operators.
type operationBase struct {
	model         *model.Model
	registry      *Registry
	fn            *stablehlo.Function
	index         int
	op            *model.Operation
	defaultOutput int
}

// checkArity validates the number of inputs and outputs. Inputs beyond minInputs are optional.
func (b *operationBase) checkArity(minInputs, maxInputs, numOutputs int) error {
	if numInputs := len(b.op.Inputs); numInputs < minInputs || numInputs > maxInputs {
		if minInputs == maxInputs {
			return invalidf("%s requires %d inputs, got %d", b.op.Type, minInputs, numInputs)
		}
		return invalidf("%s requires %d to %d inputs, got %d", b.op.Type, minInputs, maxInputs, numInputs)
	}
	if len(b.op.Outputs) != numOutputs {
		return invalidf("%s requires %d outputs, got %d", b.op.Type, numOutputs, len(b.op.Outputs))
	}
	return nil
}

// inputOperand returns the operand of the input slot.
func (b *operationBase) inputOperand(slot int) (*model.Operand, error) {
	operandIndex, err := b.model.OperationInput(b.index, slot)
	if err != nil {
		return nil, err
	}
	return b.model.Operand(operandIndex)
}

// outputOperand returns the operand of the output slot.
func (b *operationBase) outputOperand(slot int) (*model.Operand, error) {
	operandIndex, err := b.model.OperationOutput(b.index, slot)
	if err != nil {
		return nil, err
	}
	return b.model.Operand(operandIndex)
}

// isOmitted returns whether an optional input slot is missing or has no value.
func (b *operationBase) isOmitted(slot int) bool {
	if slot >= len(b.op.Inputs) {
		return true
	}
	operand, err := b.inputOperand(slot)
	return err == nil && operand.Lifetime == model.NoValue
}

// inputNode returns the node realizing the input slot.
//
// Constant operands are decoded and created as constant nodes the first time they are used, and
// registered for reuse.
func (b *operationBase) inputNode(slot int) (*stablehlo.Value, error) {
	operandIndex, err := b.model.OperationInput(b.index, slot)
	if err != nil {
		return nil, err
	}
	operand, err := b.model.Operand(operandIndex)
	if err != nil {
		return nil, err
	}
	if operand.Lifetime == model.NoValue {
		return nil, invalidf("input #%d of %s (operand #%d) has no value", slot, b.op.Type, operandIndex)
	}
	if operand.IsConstant() && !b.registry.Has(operandIndex) {
		node, err := constantFromOperand(b.fn, b.model, operandIndex)
		if err != nil {
			return nil, err
		}
		if err := b.registry.RegisterOutput(operandIndex, node); err != nil {
			return nil, err
		}
		return node, nil
	}
	return b.registry.Output(operandIndex)
}

// checkInputType validates that the input slot has one of the given types.
func (b *operationBase) checkInputType(slot int, types ...model.OperandType) error {
	operand, err := b.inputOperand(slot)
	if err != nil {
		return err
	}
	if !slices.Contains(types, operand.Type) {
		return invalidf("input #%d of %s has type %s, supported types are %v", slot, b.op.Type, operand.Type, types)
	}
	return nil
}

// checkOutputType validates that the output slot has one of the given types.
func (b *operationBase) checkOutputType(slot int, types ...model.OperandType) error {
	operand, err := b.outputOperand(slot)
	if err != nil {
		return err
	}
	if !slices.Contains(types, operand.Type) {
		return invalidf("output #%d of %s has type %s, supported types are %v", slot, b.op.Type, operand.Type, types)
	}
	return nil
}

// checkInputRank validates that the input slot has at least minRank axes.
func (b *operationBase) checkInputRank(slot, minRank int) error {
	operand, err := b.inputOperand(slot)
	if err != nil {
		return err
	}
	if operand.Rank() < minRank {
		return invalidf("input #%d of %s has rank %d, at least %d required", slot, b.op.Type, operand.Rank(), minRank)
	}
	return nil
}

// checkInputRankEqual validates that the input slot has exactly rank axes.
func (b *operationBase) checkInputRankEqual(slot, rank int) error {
	operand, err := b.inputOperand(slot)
	if err != nil {
		return err
	}
	if operand.Rank() != rank {
		return invalidf("input #%d of %s has rank %d, %d required", slot, b.op.Type, operand.Rank(), rank)
	}
	return nil
}

// parseInt32 reads the constant scalar INT32 input slot.
func (b *operationBase) parseInt32(slot int) (int32, error) {
	return model.ParseOperationInput[int32](b.model, b.index, slot)
}

// parseFloat reads the constant scalar FLOAT32 or FLOAT16 input slot.
func (b *operationBase) parseFloat(slot int) (float32, error) {
	operand, err := b.inputOperand(slot)
	if err != nil {
		return 0, err
	}
	if operand.Type == model.Float16 {
		value, err := model.ParseOperationInput[float16.Float16](b.model, b.index, slot)
		return value.Float32(), err
	}
	return model.ParseOperationInput[float32](b.model, b.index, slot)
}

// parseBool reads the constant scalar BOOL input slot.
func (b *operationBase) parseBool(slot int) (bool, error) {
	return model.ParseOperationInput[bool](b.model, b.index, slot)
}

// constantInt32s reads the constant INT32 tensor input slot.
func (b *operationBase) constantInt32s(slot int) ([]int32, error) {
	operandIndex, err := b.model.OperationInput(b.index, slot)
	if err != nil {
		return nil, err
	}
	return model.ConstantVector[int32](b.model, operandIndex)
}

// registerOutput registers the node realizing the output slot: in the result set if the operand is a model
// output, or in the registry only otherwise.
//
// The node must match the dtype and, when fully known, the dimensions of the operand.
func (b *operationBase) registerOutput(slot int, node *stablehlo.Value) error {
	operandIndex, err := b.model.OperationOutput(b.index, slot)
	if err != nil {
		return err
	}
	operand, err := b.model.Operand(operandIndex)
	if err != nil {
		return err
	}
	shape := node.Shape()
	if shape.DType != operand.Type.DType() {
		return errors.Wrapf(ErrTypeMismatch, "output #%d of %s (operand #%d) has type %s, but the node built has dtype %s",
			slot, b.op.Type, operandIndex, operand.Type, shape.DType)
	}
	if dimensionsKnown(operand) && !slices.Equal(operand.Dimensions, shape.Dimensions) {
		return invalidf("output #%d of %s (operand #%d) has dimensions %v, but the node built has shape %s",
			slot, b.op.Type, operandIndex, operand.Dimensions, shape)
	}
	if operand.Lifetime == model.SubgraphOutput {
		return b.registry.RegisterResult(operandIndex, node)
	}
	return b.registry.RegisterOutput(operandIndex, node)
}

// dimensionsKnown returns whether all the dimensions of the operand are known: scalar operand types,
// or tensors with a non-empty shape and no zero (unknown) dimension.
func dimensionsKnown(operand *model.Operand) bool {
	if !operand.Type.IsTensor() {
		return true
	}
	return operand.Rank() > 0 && operand.Size() >= 0
}
