package stablehlo

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Builder is used to construct a StableHLO program.
// See New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function
}

// New creates a new Builder object holding a computation graph in construction.
//
// Create a function (usually "main") with NewFunction, add operations (ops) one by one to it,
// until you defined the desired graph, call Function.Return, and then call the method Build,
// which returns a Computation.
func New(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// Name of the program being built.
func (b *Builder) Name() string {
	return b.name
}

// NewFunction creates a new function and adds it to the program.
// The function is public if its name is "main".
func (b *Builder) NewFunction(name string) *Function {
	fn := &Function{
		Builder:  b,
		Name:     name,
		IsPublic: name == "main",
	}
	b.functions = append(b.functions, fn)
	return fn
}

// Main creates the "main" function of the program.
func (b *Builder) Main() *Function {
	return b.NewFunction("main")
}

// Build renders the program into a Computation.
//
// It fails if there is no "main" function or if any of the functions didn't Return yet.
func (b *Builder) Build() (*Computation, error) {
	var sb strings.Builder
	var mainFn *Function
	for i, fn := range b.functions {
		if fn.Name == "main" {
			mainFn = fn
		}
		if !fn.Returned {
			return nil, errors.Errorf("function %q must Return before the program %q can be built", fn.Name, b.name)
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if err := fn.Write(&sb); err != nil {
			return nil, errors.Wrapf(err, "failed to render function %q", fn.Name)
		}
	}
	if mainFn == nil {
		return nil, errors.New("program must have a main function")
	}
	computation := &Computation{
		Name:      b.name,
		StableHLO: sb.String(),
		Outputs:   slices.Clone(mainFn.Outputs),
	}
	for _, input := range mainFn.Inputs {
		computation.Inputs = append(computation.Inputs, input.shape)
	}
	return computation, nil
}
