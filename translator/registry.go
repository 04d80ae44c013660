package translator

import (
	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/pkg/errors"
)

// Registry maps operand indexes of a model to the graph nodes realizing their values.
//
// Each operand is assigned at most once. The registry also keeps the result set: the nodes of the
// model outputs.
//
// It is owned by one translation and is not safe for concurrent use.
type Registry struct {
	model   *model.Model
	nodes   map[int]*stablehlo.Value
	results map[int]*stablehlo.Value
}

// NewRegistry creates an empty Registry for the operands of m.
func NewRegistry(m *model.Model) *Registry {
	return &Registry{
		model:   m,
		nodes:   make(map[int]*stablehlo.Value),
		results: make(map[int]*stablehlo.Value),
	}
}

// Output returns the node realizing the operand, or an error wrapping ErrUnresolvedOperand if it hasn't
// been produced yet.
func (r *Registry) Output(operandIndex int) (*stablehlo.Value, error) {
	node, found := r.nodes[operandIndex]
	if !found {
		return nil, errors.Wrapf(ErrUnresolvedOperand, "operand #%d has no node, is it consumed before being produced?", operandIndex)
	}
	return node, nil
}

// Has returns whether the operand has a node registered.
func (r *Registry) Has(operandIndex int) bool {
	_, found := r.nodes[operandIndex]
	return found
}

// Len returns the number of operands with a node registered.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// RegisterOutput assigns the node to the operand. It fails with ErrDuplicateOutput if the operand
// already has a node.
func (r *Registry) RegisterOutput(operandIndex int, node *stablehlo.Value) error {
	if node == nil {
		return errors.Errorf("nil node registered for operand #%d", operandIndex)
	}
	if _, found := r.nodes[operandIndex]; found {
		return errors.Wrapf(ErrDuplicateOutput, "operand #%d already has a node", operandIndex)
	}
	r.nodes[operandIndex] = node
	return nil
}

// RegisterResult assigns the node to the operand, and adds it to the result set.
// The operand must be a model output, otherwise it fails with ErrValidation.
func (r *Registry) RegisterResult(operandIndex int, node *stablehlo.Value) error {
	operand, err := r.model.Operand(operandIndex)
	if err != nil {
		return err
	}
	if operand.Lifetime != model.SubgraphOutput {
		return invalidf("operand #%d with lifetime %s cannot be registered as a result", operandIndex, operand.Lifetime)
	}
	if err := r.RegisterOutput(operandIndex, node); err != nil {
		return err
	}
	r.results[operandIndex] = node
	return nil
}

// Results returns the nodes of the model outputs, in the order of model.Model.OutputIndexes.
// It fails with ErrUnresolvedOperand if any of the outputs was not produced.
func (r *Registry) Results() ([]*stablehlo.Value, error) {
	results := make([]*stablehlo.Value, len(r.model.OutputIndexes))
	for i, operandIndex := range r.model.OutputIndexes {
		node, found := r.results[operandIndex]
		if !found {
			return nil, errors.Wrapf(ErrUnresolvedOperand, "model output #%d (operand #%d) was not produced by any operation",
				i, operandIndex)
		}
		results[i] = node
	}
	return results, nil
}

// ResultMap returns a copy of the result set, indexed by operand.
func (r *Registry) ResultMap() map[int]*stablehlo.Value {
	results := make(map[int]*stablehlo.Value, len(r.results))
	for operandIndex, node := range r.results {
		results[operandIndex] = node
	}
	return results
}
