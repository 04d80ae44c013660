// Package translator translates the operations of an NNAPI-style model into a StableHLO computation.
//
// Each operation is translated by an Operation in three steps: construction, Validate and CreateNode.
// Nodes realizing the operands are kept in a Registry, and constant operands are created as constant
// nodes on demand. Spatial operations convert their inputs to the NCHW layout of the backend primitives
// and their outputs back to the layout of the model.
//
// Example:
//
//	translation, err := translator.New(m).WithName("my_model").Done()
//	if err != nil { ... }
//	fmt.Println(translation.Computation.StableHLO)
package translator

import (
	"fmt"

	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
)

// DefaultName of the computation, if none is given with Translator.WithName.
const DefaultName = "nnhal"

// Translator holds the configuration of the translation of a model. Create it with New, configure it
// with the With* methods, and translate with Done.
type Translator struct {
	model *model.Model
	name  string
	sink  EventSink
}

// New creates a Translator for the model m. By default, events are logged with KlogSink.
func New(m *model.Model) *Translator {
	return &Translator{
		model: m,
		name:  DefaultName,
		sink:  KlogSink{},
	}
}

// WithName sets the name of the computation.
func (t *Translator) WithName(name string) *Translator {
	t.name = name
	return t
}

// WithEventSink sets where to report the progress of the translation. A nil sink discards events.
func (t *Translator) WithEventSink(sink EventSink) *Translator {
	if sink == nil {
		sink = DiscardSink{}
	}
	t.sink = sink
	return t
}

// Translation is the result of translating a model.
type Translation struct {
	// Computation is the rendered StableHLO program.
	Computation *stablehlo.Computation

	// Function is the "main" function built, with one parameter per model input, in order, and returning
	// the model outputs, in order. It can be used with stablehlo.Function.Evaluate.
	Function *stablehlo.Function

	// Registry with the nodes of all operands.
	Registry *Registry

	// Results maps the operand index of the model outputs to their nodes.
	Results map[int]*stablehlo.Value
}

// Done translates the model.
//
// Operations are translated in order, and the first failure aborts the translation: it is returned
// as an *OperationError with the index and type of the operation.
func (t *Translator) Done() (translation *Translation, err error) {
	t.sink.Emit(Event{Kind: TranslationStarted, Name: t.name})
	defer func() {
		t.sink.Emit(Event{Kind: TranslationDone, Name: t.name, Err: err})
	}()

	m := t.model
	if m == nil {
		return nil, errors.New("translator.New() given a nil model")
	}
	if err = m.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "translating %q", t.name)
	}
	builder := stablehlo.New(t.name)
	fn := builder.Main()
	registry := NewRegistry(m)
	if err = addParameters(m, fn, registry); err != nil {
		return nil, errors.WithMessagef(err, "translating %q", t.name)
	}

	for opIndex := range m.Operations {
		if err = t.translateOperation(m, registry, fn, opIndex); err != nil {
			return nil, err
		}
	}

	results, err := registry.Results()
	if err != nil {
		return nil, err
	}
	if err = fn.Return(results...); err != nil {
		return nil, err
	}
	computation, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Translation{
		Computation: computation,
		Function:    fn,
		Registry:    registry,
		Results:     registry.ResultMap(),
	}, nil
}

// translateOperation constructs, validates and creates the nodes of one operation.
func (t *Translator) translateOperation(m *model.Model, registry *Registry, fn *stablehlo.Function, opIndex int) error {
	opType := m.Operations[opIndex].Type
	fail := func(err error) error {
		t.sink.Emit(Event{Kind: OperationFailed, Name: t.name, OperationIndex: opIndex, OperationType: opType, Err: err})
		return &OperationError{Index: opIndex, Type: opType, Err: err}
	}
	op, err := NewOperation(m, registry, fn, opIndex)
	if err != nil {
		return fail(err)
	}
	if err := op.Validate(); err != nil {
		return fail(err)
	}
	t.sink.Emit(Event{Kind: OperationValidated, Name: t.name, OperationIndex: opIndex, OperationType: opType})
	if _, err := op.CreateNode(); err != nil {
		return fail(err)
	}
	t.sink.Emit(Event{Kind: OperationBuilt, Name: t.name, OperationIndex: opIndex, OperationType: opType})
	return nil
}

// addParameters creates one parameter per model input, named "input<i>", and registers them.
func addParameters(m *model.Model, fn *stablehlo.Function, registry *Registry) error {
	for i, operandIndex := range m.InputIndexes {
		operand, err := m.Operand(operandIndex)
		if err != nil {
			return err
		}
		dtype := operand.Type.DType()
		if dtype == dtypes.InvalidDType {
			return errors.Wrapf(ErrTypeMismatch, "model input #%d (operand #%d) has unsupported type %s", i, operandIndex, operand.Type)
		}
		if !dimensionsKnown(operand) {
			return errors.Wrapf(ErrValidation, "model input #%d (operand #%d) has unknown dimensions %v",
				i, operandIndex, operand.Dimensions)
		}
		param, err := fn.Parameter(fmt.Sprintf("input%d", i), shapes.Make(dtype, operand.Dimensions...))
		if err != nil {
			return err
		}
		if err := registry.RegisterOutput(operandIndex, param); err != nil {
			return err
		}
	}
	return nil
}
