package field

import (
	"reflect"

	"github.com/soyesenna/helix-query-sub000/expr"
)

// Identifiable is satisfied by entities whose metamodel reports a single
// identifier attribute, the only shape RelationField.In and two-phase
// pagination can operate against.
type Identifiable[ID any] interface {
	HelixID() ID
}

// RelationField describes a to-one relation from entity T to related entity
// R, keyed by identifier type ID. It is also the `$` accessor used inside a
// nested relation's field group to join the relation itself.
type RelationField[T, R any, ID any] struct {
	Descriptor
	idPath *expr.Path
}

// NewRelation returns a RelationField descriptor. idName is the related
// entity's identifier attribute name, used to build the ID-lowered path for
// In (Decision D1).
func NewRelation[T, R any, ID any](name, relationPath, idName string) RelationField[T, R, ID] {
	d := newDescriptor[T, R](name, relationPath)
	idRelPath := name
	if relationPath != "" {
		idRelPath = relationPath
	}
	return RelationField[T, R, ID]{
		Descriptor: d,
		idPath:     expr.Root(d.EntityType).Get(reflect.TypeOf((*ID)(nil)).Elem(), name+"."+idName, idRelPath),
	}
}

// Eq compares the relation to a related-entity value by identifier.
func (f RelationField[T, R, ID]) Eq(related Identifiable[ID]) *expr.Predicate {
	return expr.Eq(f.idPath, expr.Lit(related.HelixID()))
}

// NotEq is the negation of Eq.
func (f RelationField[T, R, ID]) NotEq(related Identifiable[ID]) *expr.Predicate {
	return expr.NotEq(f.idPath, expr.Lit(related.HelixID()))
}

// In lowers to IN over the related entities' identifiers rather than IN
// over whole-entity literals: the criteria compiler is made to do this
// explicitly rather than silently reducing entity literals to IDs under the
// hood. An empty or nil related is a no-op, matching Simple.In.
func (f RelationField[T, R, ID]) In(related []Identifiable[ID]) *expr.Predicate {
	if len(related) == 0 {
		return nil
	}
	ids := make([]ID, len(related))
	for i, r := range related {
		ids[i] = r.HelixID()
	}
	return expr.In(f.idPath, expr.Coll(ids))
}

// IsNull and IsNotNull test the related entity's identifier path, so
// compiling either one LEFT JOINs the relation, even when the descriptor's
// RelationPath is empty.
func (f RelationField[T, R, ID]) IsNull() *expr.Predicate    { return expr.IsNull(f.idPath) }
func (f RelationField[T, R, ID]) IsNotNull() *expr.Predicate { return expr.IsNotNull(f.idPath) }

// Joinable reports that this descriptor names a relation the criteria
// compiler may auto-join; fetch joins go through the same path with a
// fetch-upgrade flag carried by the compiler, not the descriptor.
func (f RelationField[T, R, ID]) Joinable() bool { return true }
