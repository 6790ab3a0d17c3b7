package expr

import (
	"fmt"
	"reflect"
)

// Constant is a literal value carrying an explicit declared type. A
// Constant may be a typed null (Null true, Value ignored) or a collection
// constant (Values holds the element slice, Value is unused).
type Constant struct {
	Type   reflect.Type
	Value  any
	Null   bool
	Values []any // non-nil for collection constants
}

func (*Constant) node() {}

// Lit returns a non-null scalar constant of the given declared type.
func Lit[V any](v V) *Constant {
	return &Constant{Type: reflectOf[V](), Value: v}
}

// NullOf returns a typed null constant for V.
func NullOf[V any]() *Constant {
	return &Constant{Type: reflectOf[V](), Null: true}
}

// Coll returns a collection constant over vs, preserving the declared
// element type even when vs is empty.
func Coll[V any](vs []V) *Constant {
	values := make([]any, len(vs))
	for i, v := range vs {
		values[i] = v
	}
	return &Constant{Type: reflectOf[V](), Values: values}
}

// String renders the constant's debug form.
func (c *Constant) String() string {
	if c.Null {
		return "nil"
	}
	if c.Values != nil {
		s := "["
		for i, v := range c.Values {
			if i > 0 {
				s += ","
			}
			s += litString(v)
		}
		return s + "]"
	}
	return litString(c.Value)
}

func litString(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
