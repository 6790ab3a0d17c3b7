package field

import "github.com/soyesenna/helix-query-sub000/expr"

// CollectionField describes a to-many attribute reachable from the owning
// entity T whose elements are of type E: a persisted collection, not a
// joinable relation (see RelationField for that).
type CollectionField[T, E any] struct {
	Descriptor
}

// NewCollection returns a CollectionField descriptor.
func NewCollection[T, E any](name, relationPath string) CollectionField[T, E] {
	return CollectionField[T, E]{newDescriptor[T, E](name, relationPath)}
}

// Size returns a Long-typed (int64) scalar operation over the collection's
// cardinality.
func (f CollectionField[T, E]) Size() *expr.Operation {
	return expr.NewOperation(expr.SizeOp, reflectInt64, f.Path())
}

// Contains returns a MEMBER OF predicate: element MEMBER OF path.
func (f CollectionField[T, E]) Contains(element E) *expr.Predicate {
	return expr.MemberOf(expr.Lit(element), f.Path())
}

// IsEmpty and IsNotEmpty test the collection's cardinality without
// materializing it.
func (f CollectionField[T, E]) IsEmpty() *expr.Predicate {
	return expr.IsCollectionEmpty(f.Path())
}

func (f CollectionField[T, E]) IsNotEmpty() *expr.Predicate {
	return expr.IsCollectionNotEmpty(f.Path())
}
