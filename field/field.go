// Package field provides the typed, categorized field descriptor
// hierarchy: handles to entity attributes that constrain which operators a
// caller may use against a given value's type.
//
// Field names follow database conventions (dotted attribute paths), and
// are emitted by the metadata generator (see package gen) as process-
// lifetime immutable values:
//
//	var Name = field.NewString[User]("name", "")
//	var Age  = field.NewNumber[User, int]("age", "")
//
// Generic field types are parameterized over the owning entity T so a
// descriptor anchored at User can't be used against a Query[Post] by
// mistake, and over the leaf value type V so operator arguments type-check
// at compile time.
package field

import (
	"reflect"

	"github.com/soyesenna/helix-query-sub000/expr"
)

// Descriptor is the common, untyped core every field descriptor variant
// embeds: the dotted attribute path, the owning entity type, the leaf
// value type, and the relation prefix that must be auto-joined before the
// leaf can be resolved (non-empty iff Name crosses a relation boundary).
type Descriptor struct {
	Name         string
	RelationPath string
	ValueType    reflect.Type
	EntityType   reflect.Type
}

// Path returns the IR path this descriptor resolves to.
func (d Descriptor) Path() *expr.Path {
	root := expr.Root(d.EntityType)
	if d.Name == "" {
		return root
	}
	return root.Get(d.ValueType, d.Name, d.RelationPath)
}

func newDescriptor[T, V any](name, relationPath string) Descriptor {
	var t T
	return Descriptor{
		Name:         name,
		RelationPath: relationPath,
		ValueType:    reflect.TypeOf((*V)(nil)).Elem(),
		EntityType:   reflect.TypeOf(t),
	}
}

// HelixField is the unified capability every descriptor variant satisfies:
// equality and null checks against a value of type V.
type HelixField[V any] interface {
	Eq(v V) *expr.Predicate
	NotEq(v V) *expr.Predicate
	IsNull() *expr.Predicate
	IsNotNull() *expr.Predicate
}

// Simple is the base descriptor variant: equality, null checks, and IN.
type Simple[T, V any] struct {
	Descriptor
}

// NewSimple returns a Simple field descriptor for entity T's attribute at
// the given dotted name. relationPath is the dotted prefix requiring an
// auto-join, or "" if name does not cross a relation boundary.
func NewSimple[T, V any](name, relationPath string) Simple[T, V] {
	return Simple[T, V]{newDescriptor[T, V](name, relationPath)}
}

// Eq returns a predicate comparing the path to a constant of V.
func (f Simple[T, V]) Eq(v V) *expr.Predicate {
	return expr.Eq(f.Path(), expr.Lit(v))
}

// NotEq returns a predicate comparing the path to be unequal to v.
func (f Simple[T, V]) NotEq(v V) *expr.Predicate {
	return expr.NotEq(f.Path(), expr.Lit(v))
}

// IsNull and IsNotNull are always legal and never add a join on their own
// when RelationPath is empty.
func (f Simple[T, V]) IsNull() *expr.Predicate    { return expr.IsNull(f.Path()) }
func (f Simple[T, V]) IsNotNull() *expr.Predicate { return expr.IsNotNull(f.Path()) }

// In returns a predicate matching rows whose value is one of vs. An empty
// or nil vs is a no-op (returns nil) rather than a "match nothing" filter —
// callers that want "no match" use expr.False explicitly.
func (f Simple[T, V]) In(vs []V) *expr.Predicate {
	return expr.In(f.Path(), expr.Coll(vs))
}

// NotIn is the negated counterpart of In, with the same empty-slice no-op.
func (f Simple[T, V]) NotIn(vs []V) *expr.Predicate {
	return expr.NotIn(f.Path(), expr.Coll(vs))
}

// Asc and Desc return order specifiers anchored at this descriptor's path.
func (f Simple[T, V]) Asc() expr.OrderSpec  { return expr.OrderAsc(f.Path()) }
func (f Simple[T, V]) Desc() expr.OrderSpec { return expr.OrderDesc(f.Path()) }
