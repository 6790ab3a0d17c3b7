// Package query implements the fluent query builder and its execution
// engine: the stateful, single-owner builder that accumulates
// where/order/join/group/having/pagination clauses over a generic entity
// T, and the terminal operations that lower the accumulated state through
// the criteria compiler and run it against a session.
package query

import (
	"context"

	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/session"
	"github.com/soyesenna/helix-query-sub000/where"
)

// Preloader hydrates a relation onto parents after they have already been
// loaded and identified: the session's Mapper[T] only knows how to scan
// T's own columns, so a fetch join's target rows are loaded and attached
// by a second, narrowly-typed query instead of a heterogeneous
// multi-entity row scan.
type Preloader[T any] func(ctx context.Context, parents []*T) error

// joinKind records whether a join was requested as INNER or LEFT (fetch is
// a separate flag on joinSpec); the kind is tracked for API completeness
// but the criteria compiler's auto-join materializer always renders LEFT
// JOIN.
type joinKind int

const (
	kindInner joinKind = iota
	kindLeft
)

type joinSpec[T any] struct {
	relation  string
	kind      joinKind
	fetch     bool
	preloader Preloader[T]
}

// Query is the generic fluent builder A Query is a
// short-lived, single-owner object: executing it does not destroy it, but
// it is not safe for concurrent mutation.
type Query[T any] struct {
	sess   *session.Session[T]
	schema criteria.Schema

	wb       *where.Builder
	order    []expr.OrderSpec
	joins    []joinSpec[T]
	groupBy  []expr.Node
	having   *expr.Predicate
	distinct bool
	limit    *int
	offset   *int

	pageable *Pageable
}

// New returns a Query rooted at sess's entity, resolving attribute/relation
// names against schema (the entity's criteria.Schema implementation).
func New[T any](sess *session.Session[T], schema criteria.Schema) *Query[T] {
	return &Query[T]{sess: sess, schema: schema, wb: where.New()}
}

// Where ANDs p into the accumulated predicate. A nil p is a no-op
//.
func (q *Query[T]) Where(p *expr.Predicate) *Query[T] {
	q.wb.And(p)
	return q
}

// And is an alias of Where, named for the fluent chain's readability
// (`.Where(a).And(b)`).
func (q *Query[T]) And(p *expr.Predicate) *Query[T] {
	q.wb.And(p)
	return q
}

// Or ORs p into the accumulated predicate.
func (q *Query[T]) Or(p *expr.Predicate) *Query[T] {
	q.wb.Or(p)
	return q
}

// WhereGroup instantiates a nested predicate builder, passes it to
// consumer, and ANDs the resulting predicate into the accumulator. An
// empty nested group is discarded rather than folded in as always-true.
func (q *Query[T]) WhereGroup(consumer func(*where.Builder)) *Query[T] {
	q.wb.AndGroup(consumer)
	return q
}

// OrGroup is the OR counterpart of WhereGroup.
func (q *Query[T]) OrGroup(consumer func(*where.Builder)) *Query[T] {
	q.wb.OrGroup(consumer)
	return q
}

// WhereAllOf ANDs the fold of ps (ignoring nils) into the accumulator.
func (q *Query[T]) WhereAllOf(ps ...*expr.Predicate) *Query[T] {
	q.wb.AllOf(ps...)
	return q
}

// WhereAnyOf folds ps with OR (ignoring nils) and ANDs that fold into the
// accumulator.
func (q *Query[T]) WhereAnyOf(ps ...*expr.Predicate) *Query[T] {
	q.wb.AnyOf(ps...)
	return q
}

// OrderBy appends one or more order specifiers.
func (q *Query[T]) OrderBy(specs ...expr.OrderSpec) *Query[T] {
	q.order = append(q.order, specs...)
	return q
}

// Limit sets the maximum number of rows the terminal list/page operation
// returns.
func (q *Query[T]) Limit(n int) *Query[T] {
	q.limit = &n
	return q
}

// Offset sets the number of rows to skip.
func (q *Query[T]) Offset(n int) *Query[T] {
	q.offset = &n
	return q
}

// Join registers a plain INNER join on relation, a dotted attribute path
// resolved against schema.
func (q *Query[T]) Join(relation string) *Query[T] {
	q.joins = append(q.joins, joinSpec[T]{relation: relation, kind: kindInner})
	return q
}

// LeftJoin registers a plain LEFT join on relation.
func (q *Query[T]) LeftJoin(relation string) *Query[T] {
	q.joins = append(q.joins, joinSpec[T]{relation: relation, kind: kindLeft})
	return q
}

// FetchJoin registers an INNER fetch join on relation: the join participates
// in WHERE/ORDER BY resolution and in two-phase pagination's trigger
// condition, and preloader hydrates the relation onto the result set after
// the root rows are loaded (see Preloader).
func (q *Query[T]) FetchJoin(relation string, preloader Preloader[T]) *Query[T] {
	q.joins = append(q.joins, joinSpec[T]{relation: relation, kind: kindInner, fetch: true, preloader: preloader})
	return q
}

// LeftFetchJoin is the LEFT-join counterpart of FetchJoin.
func (q *Query[T]) LeftFetchJoin(relation string, preloader Preloader[T]) *Query[T] {
	q.joins = append(q.joins, joinSpec[T]{relation: relation, kind: kindLeft, fetch: true, preloader: preloader})
	return q
}

// LeftFetchJoinDistinct is LeftFetchJoin plus Distinct, for the common case
// of fetch-joining a to-many relation without pagination:
// without DISTINCT the root entity would repeat once per child row.
func (q *Query[T]) LeftFetchJoinDistinct(relation string, preloader Preloader[T]) *Query[T] {
	q.LeftFetchJoin(relation, preloader)
	return q.Distinct()
}

// GroupBy appends SQL-level grouping expressions (for groupByCount/Having;
// see GroupByKey for client-side grouping by an extracted key).
func (q *Query[T]) GroupBy(exprs ...expr.Node) *Query[T] {
	q.groupBy = append(q.groupBy, exprs...)
	return q
}

// Having sets the HAVING predicate.
func (q *Query[T]) Having(p *expr.Predicate) *Query[T] {
	q.having = p
	return q
}

// Distinct marks the query DISTINCT.
func (q *Query[T]) Distinct() *Query[T] {
	q.distinct = true
	return q
}

// When applies consumer to the builder only when cond is true, for
// conditional clause composition without breaking the fluent chain.
func (q *Query[T]) When(cond bool, consumer func(*Query[T])) *Query[T] {
	if cond {
		consumer(q)
	}
	return q
}
