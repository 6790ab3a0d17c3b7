package expr

import (
	"reflect"
	"strings"
)

// Constructor is a projection shape that maps a list of scalar expressions
// onto the fields of a target class, lowered by the execution engine as a
// `construct(T, args...)` selection. Constructor and Tuple are never
// visited through the criteria compiler's Compile entry point: the
// underlying persistence runtime's projection selection type is not an
// expression, so the execution engine consumes them directly.
type Constructor struct {
	Target reflect.Type
	Args   []Node
}

func (*Constructor) node() {}

// NewConstructor returns a Constructor projecting args onto target.
func NewConstructor(target reflect.Type, args ...Node) *Constructor {
	return &Constructor{Target: target, Args: args}
}

func (c *Constructor) String() string {
	return formatCall("construct<"+c.Target.Name()+">", c.Args)
}

// Tuple is an ordered list of scalar expressions, lowered as a
// `multiselect(...)`.
type Tuple struct {
	Items []Node
}

func (*Tuple) node() {}

// NewTuple returns a Tuple over items.
func NewTuple(items ...Node) *Tuple {
	return &Tuple{Items: items}
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
