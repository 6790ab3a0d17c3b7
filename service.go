package helix

import (
	"context"

	"github.com/soyesenna/helix-query-sub000/expr"
)

// Service is the convenience base for persistence-context-bound services
//: a thin wrapper over Factory that adds the handful of
// whole-collection/CRUD shortcuts most services end up hand-writing
// themselves, without hiding Query[T] from callers who need more than the
// shortcuts offer.
type Service[T any] struct {
	*Factory[T]
}

// NewService returns a Service wrapping factory.
func NewService[T any](factory *Factory[T]) *Service[T] {
	return &Service[T]{Factory: factory}
}

// Find returns every row of T, unfiltered.
func (s *Service[T]) Find(ctx context.Context) ([]*T, error) {
	return s.Query().List(ctx)
}

// Where opens a query pre-seeded with p, for callers that want the
// shortcut's terminal behavior (list) but a custom predicate. A nil p
// behaves like Find.
func (s *Service[T]) Where(ctx context.Context, p *expr.Predicate) ([]*T, error) {
	return s.Query().Where(p).List(ctx)
}

// Persist, Merge, Remove, Refresh, Detach, Flush, and FindByID pass
// through to the bound session unchanged; they exist on Service so a caller working only against
// the service base never has to reach past it for the ordinary lifecycle
// operations.
func (s *Service[T]) Persist(ctx context.Context, entity *T) error {
	return s.session().Persist(ctx, entity)
}

func (s *Service[T]) Merge(ctx context.Context, entity *T) (*T, error) {
	return s.session().Merge(ctx, entity)
}

// Save implements policy: persist when entity's identifier
// is unset, merge otherwise, in both cases returning the same instance.
func (s *Service[T]) Save(ctx context.Context, entity *T) (*T, error) {
	return s.session().Save(ctx, entity)
}

func (s *Service[T]) Remove(ctx context.Context, entity *T) error {
	return s.session().Remove(ctx, entity)
}

func (s *Service[T]) Refresh(ctx context.Context, entity *T) error {
	return s.session().Refresh(ctx, entity)
}

func (s *Service[T]) Detach(entity *T) {
	s.session().Detach(entity)
}

func (s *Service[T]) Flush(ctx context.Context) error {
	return s.session().Flush(ctx)
}

func (s *Service[T]) FindByID(ctx context.Context, id any) (*T, error) {
	return s.session().FindByID(ctx, id)
}

// FindBy is a free function, not a method: Go does not allow a method to
// introduce a type parameter beyond its receiver's (see query/sugar.go's
// doc comment for the same constraint), so the typed `findBy(field,
// value)` shortcut is expressed as FindBy[T, V] taking the
// service explicitly.
func FindBy[T, V any](ctx context.Context, s *Service[T], f eqField[V], value V) ([]*T, error) {
	return s.Query().Where(f.Eq(value)).List(ctx)
}

// FindByCollection is the collection overload of findBy: an empty or nil
// collection constrains the query with AlwaysFalse, matching
// property 2's distinction between IN's "unfiltered on empty" and a
// caller who explicitly asked for whole-collection membership.
func FindByCollection[T, V any](ctx context.Context, s *Service[T], f inField[V], values []V) ([]*T, error) {
	if len(values) == 0 {
		return s.Query().Where(expr.False()).List(ctx)
	}
	return s.Query().Where(f.In(values)).List(ctx)
}

// eqField and inField mirror query/sugar.go's local capability interfaces:
// built against the field package's actual method sets rather than
// importing field directly, so any descriptor variant exposing Eq/In
// satisfies them without this package depending on field's generics.
type eqField[V any] interface {
	Eq(V) *expr.Predicate
}

type inField[V any] interface {
	In([]V) *expr.Predicate
}
