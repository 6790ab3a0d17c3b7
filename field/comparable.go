package field

import "github.com/soyesenna/helix-query-sub000/expr"

// ComparableField adds total-order comparisons over Simple: <, <=, >, >=,
// and BETWEEN.
type ComparableField[T, V any] struct {
	Simple[T, V]
}

// NewComparable returns a ComparableField descriptor.
func NewComparable[T, V any](name, relationPath string) ComparableField[T, V] {
	return ComparableField[T, V]{NewSimple[T, V](name, relationPath)}
}

func (f ComparableField[T, V]) Lt(v V) *expr.Predicate  { return expr.Lt(f.Path(), expr.Lit(v)) }
func (f ComparableField[T, V]) Lte(v V) *expr.Predicate { return expr.Le(f.Path(), expr.Lit(v)) }
func (f ComparableField[T, V]) Gt(v V) *expr.Predicate  { return expr.Gt(f.Path(), expr.Lit(v)) }
func (f ComparableField[T, V]) Gte(v V) *expr.Predicate { return expr.Ge(f.Path(), expr.Lit(v)) }

// Between returns lo <= path <= hi.
func (f ComparableField[T, V]) Between(lo, hi V) *expr.Predicate {
	return expr.Between(f.Path(), expr.Lit(lo), expr.Lit(hi))
}
