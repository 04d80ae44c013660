package stablehlo

import (
	"math"
	"reflect"

	"github.com/chewxy/math32"
	"github.com/gomlx/nnhal/dtypes"
	"github.com/gomlx/nnhal/stablehlo/optypes"
	"github.com/gomlx/nnhal/stablehlo/shapes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Evaluate runs the function on the host with the given inputs, one per Function.Inputs, and returns
// the values passed to Return.
//
// It is a slow reference implementation, used to check the numeric behavior of small graphs.
// Element-wise ops are computed in float64 (float32 for float32 values), data movement is exact.
// Custom calls to Proposal are not supported.
func (fn *Function) Evaluate(inputs ...*Literal) ([]*Literal, error) {
	if !fn.Returned {
		return nil, errors.Errorf("function %q must Return before it can be evaluated", fn.Name)
	}
	if len(inputs) != len(fn.Inputs) {
		return nil, errors.Errorf("function %q takes %d inputs, %d given to Evaluate", fn.Name, len(fn.Inputs), len(inputs))
	}
	results := make([]*Literal, len(fn.values))
	for i, input := range inputs {
		param := fn.Inputs[i]
		if input == nil || !input.shape.Equal(param.shape) {
			return nil, errors.Errorf("input #%d (%s) of function %q requires shape %s, got %v",
				i, param, fn.Name, param.shape, input)
		}
		results[param.id] = input
	}

	for _, stmt := range fn.Statements {
		operands := make([]*Literal, len(stmt.Inputs))
		for i, input := range stmt.Inputs {
			operands[i] = results[input.id]
			if operands[i] == nil {
				return nil, errors.Errorf("value %s used by %s before being computed", input, stmt.OpType)
			}
		}
		if stmt.OpType == optypes.FuncReturn {
			return operands, nil
		}
		outputs, err := evaluateStatement(stmt, operands)
		if err != nil {
			return nil, errors.WithMessagef(err, "while evaluating %s in function %q", stmt.OpType, fn.Name)
		}
		for i, output := range stmt.Outputs {
			results[output.id] = outputs[i]
		}
	}
	return nil, errors.Errorf("function %q has no return statement", fn.Name)
}

func evaluateStatement(stmt *Statement, operands []*Literal) ([]*Literal, error) {
	outputShape := stmt.Outputs[0].shape
	var output *Literal
	switch stmt.OpType {
	case optypes.Constant:
		output = stmt.Outputs[0].literal
	case optypes.Reshape, optypes.Unsqueeze:
		output = &Literal{shape: outputShape, flat: operands[0].flat}
	case optypes.Transpose:
		output = evalTranspose(outputShape, operands[0], stmt.Attributes["permutation"].([]int))
	case optypes.Tanh:
		output = evalElementwise(outputShape, operands, math32.Tanh, math.Tanh)
	case optypes.Logistic:
		output = evalElementwise(outputShape, operands,
			func(x float32) float32 { return 1 / (1 + math32.Exp(-x)) },
			func(x float64) float64 { return 1 / (1 + math.Exp(-x)) })
	case optypes.Max:
		output = evalElementwise(outputShape, operands, math32.Max, math.Max)
	case optypes.Min:
		output = evalElementwise(outputShape, operands, math32.Min, math.Min)
	case optypes.Clamp:
		output = evalElementwise(outputShape, operands,
			func(lo, x, hi float32) float32 { return math32.Min(math32.Max(x, lo), hi) },
			func(lo, x, hi float64) float64 { return math.Min(math.Max(x, lo), hi) })
	default:
		return nil, errors.Errorf("op %s not supported by Evaluate", stmt.OpType)
	}
	if output == nil {
		return nil, errors.Errorf("failed to evaluate op %s", stmt.OpType)
	}
	return []*Literal{output}, nil
}

// evalElementwise applies f32 to float32 operands, or f64 to any other dtype (converting back and forth).
// fn32 and fn64 must take as many arguments as there are operands (1, 2 or 3).
// Operands with a single element are broadcast.
func evalElementwise(shape shapes.Shape, operands []*Literal, fn32, fn64 any) *Literal {
	size := shape.Size()
	if shape.DType == dtypes.Float32 {
		args := make([][]float32, len(operands))
		for i, operand := range operands {
			args[i] = operand.flat.([]float32)
		}
		flat := make([]float32, size)
		at := func(i, j int) float32 { return args[i][min(j, len(args[i])-1)] }
		for j := range flat {
			switch f := fn32.(type) {
			case func(float32) float32:
				flat[j] = f(at(0, j))
			case func(float32, float32) float32:
				flat[j] = f(at(0, j), at(1, j))
			case func(float32, float32, float32) float32:
				flat[j] = f(at(0, j), at(1, j), at(2, j))
			default:
				return nil
			}
		}
		return &Literal{shape: shape, flat: flat}
	}

	args := make([][]float64, len(operands))
	for i, operand := range operands {
		args[i] = toFloat64s(operand)
	}
	values := make([]float64, size)
	at := func(i, j int) float64 { return args[i][min(j, len(args[i])-1)] }
	for j := range values {
		switch f := fn64.(type) {
		case func(float64) float64:
			values[j] = f(at(0, j))
		case func(float64, float64) float64:
			values[j] = f(at(0, j), at(1, j))
		case func(float64, float64, float64) float64:
			values[j] = f(at(0, j), at(1, j), at(2, j))
		default:
			return nil
		}
	}
	return &Literal{shape: shape, flat: fromFloat64s(shape.DType, values)}
}

func toFloat64s(l *Literal) []float64 {
	if flat, ok := l.flat.([]float16.Float16); ok {
		values := make([]float64, len(flat))
		for i, v := range flat {
			values[i] = float64(v.Float32())
		}
		return values
	}
	flatV := reflect.ValueOf(l.flat)
	values := make([]float64, flatV.Len())
	float64Type := reflect.TypeOf(float64(0))
	for i := range values {
		values[i] = flatV.Index(i).Convert(float64Type).Float()
	}
	return values
}

func fromFloat64s(dtype dtypes.DType, values []float64) any {
	flat := reflect.MakeSlice(reflect.SliceOf(dtype.GoType()), len(values), len(values))
	for i, v := range values {
		flat.Index(i).Set(reflect.ValueOf(dtype.FromFloat64(v)))
	}
	return flat.Interface()
}

// evalTranspose moves the elements of operand: output axis i corresponds to operand axis permutation[i].
func evalTranspose(outputShape shapes.Shape, operand *Literal, permutation []int) *Literal {
	rank := operand.shape.Rank()
	srcStrides := make([]int, rank)
	stride := 1
	for axis := rank - 1; axis >= 0; axis-- {
		srcStrides[axis] = stride
		stride *= operand.shape.Dimensions[axis]
	}

	srcV := reflect.ValueOf(operand.flat)
	size := outputShape.Size()
	dst := reflect.MakeSlice(srcV.Type(), size, size)
	outputIndex := make([]int, rank)
	for dstPos := range size {
		srcPos := 0
		for axis, idx := range outputIndex {
			srcPos += idx * srcStrides[permutation[axis]]
		}
		dst.Index(dstPos).Set(srcV.Index(srcPos))

		// Increment the output multi-dimensional index, in row-major order.
		for axis := rank - 1; axis >= 0; axis-- {
			outputIndex[axis]++
			if outputIndex[axis] < outputShape.Dimensions[axis] {
				break
			}
			outputIndex[axis] = 0
		}
	}
	return &Literal{shape: outputShape, flat: dst.Interface()}
}
