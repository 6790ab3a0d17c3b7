package field

import "github.com/soyesenna/helix-query-sub000/expr"

// Number is the constraint satisfied by every value type a NumberField may
// wrap.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberField adds arithmetic operations, IN, and aggregates over
// ComparableField.
type NumberField[T any, V Number] struct {
	ComparableField[T, V]
}

// NewNumber returns a NumberField descriptor.
func NewNumber[T any, V Number](name, relationPath string) NumberField[T, V] {
	return NumberField[T, V]{NewComparable[T, V](name, relationPath)}
}

func (f NumberField[T, V]) op(o expr.Op, other V) *expr.Operation {
	return expr.NewOperation(o, f.ValueType, f.Path(), expr.Lit(other))
}

func (f NumberField[T, V]) Add(v V) *expr.Operation      { return f.op(expr.AddOp, v) }
func (f NumberField[T, V]) Subtract(v V) *expr.Operation { return f.op(expr.SubtractOp, v) }
func (f NumberField[T, V]) Multiply(v V) *expr.Operation { return f.op(expr.MultiplyOp, v) }
func (f NumberField[T, V]) Divide(v V) *expr.Operation   { return f.op(expr.DivideOp, v) }
func (f NumberField[T, V]) Mod(v V) *expr.Operation      { return f.op(expr.ModOp, v) }

func (f NumberField[T, V]) Abs() *expr.Operation {
	return expr.NewOperation(expr.AbsOp, f.ValueType, f.Path())
}

func (f NumberField[T, V]) Negate() *expr.Operation {
	return expr.NewOperation(expr.NegateOp, f.ValueType, f.Path())
}

func (f NumberField[T, V]) Sqrt() *expr.Operation {
	return expr.NewOperation(expr.SqrtOp, reflectFloat, f.Path())
}

// Count and CountDistinct return Long-typed (int64) aggregates.
func (f NumberField[T, V]) Count() *expr.Operation {
	return expr.NewOperation(expr.CountOp, reflectInt64, f.Path())
}

func (f NumberField[T, V]) CountDistinct() *expr.Operation {
	return expr.NewOperation(expr.CountDistinctOp, reflectInt64, f.Path())
}

// Sum, Min, and Max return an aggregate typed as the operand type.
func (f NumberField[T, V]) Sum() *expr.Operation {
	return expr.NewOperation(expr.SumOp, f.ValueType, f.Path())
}

func (f NumberField[T, V]) Min() *expr.Operation {
	return expr.NewOperation(expr.MinOp, f.ValueType, f.Path())
}

func (f NumberField[T, V]) Max() *expr.Operation {
	return expr.NewOperation(expr.MaxOp, f.ValueType, f.Path())
}

// Avg returns a Double-typed (float64) aggregate.
func (f NumberField[T, V]) Avg() *expr.Operation {
	return expr.NewOperation(expr.AvgOp, reflectFloat, f.Path())
}
