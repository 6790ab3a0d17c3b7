package expr

import (
	"reflect"
	"strings"
)

// Operation is an operator tag plus an ordered list of child expressions,
// with a declared result type. Used for scalar expressions: arithmetic,
// string functions, aggregates, conversions, and temporal literals.
type Operation struct {
	Op         Op
	Args       []Node
	ResultType reflect.Type
}

func (*Operation) node() {}

// NewOperation constructs an Operation, used by field descriptors whose
// factory methods return typed scalar expressions (e.g. NumberField.Add).
func NewOperation(op Op, resultType reflect.Type, args ...Node) *Operation {
	return &Operation{Op: op, Args: args, ResultType: resultType}
}

// String renders a debug form of the operation.
func (o *Operation) String() string {
	return formatCall(string(o.Op), o.Args)
}

func formatCall(name string, args []Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
