// Package helix is the root package: the factory that opens a Query[T]
// against a persistence-context-bound session (// `query(entityClass)`/`selectFrom(entityClass)`), and the convenience
// service base built on top of it. Everything else lives in narrower
// packages (field, expr, where, criteria, query, session, gen); this
// package is the thin entry point an application actually imports.
package helix

import (
	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/query"
	"github.com/soyesenna/helix-query-sub000/session"
)

// SessionSupplier resolves the currently active session on every access,
// e.g. from a thread-local or request-scoped store. It is invoked fresh on
// every Query/SelectFrom call and never cached, so a Factory built from a supplier always reflects
// the session active at the moment a query is opened rather than whatever
// was active when the Factory was constructed.
type SessionSupplier[T any] func() *session.Session[T]

// Factory is the query-opening entry point bound to one entity type,
// query/selectFrom factory. A Factory holds either a fixed
// session reference or a SessionSupplier; the two constructors below pick
// which.
type Factory[T any] struct {
	fixed    *session.Session[T]
	supplier SessionSupplier[T]
	schema   criteria.Schema
}

// NewFactory returns a Factory bound to a fixed session, for callers that
// don't need per-access session resolution (e.g. a single long-lived
// connection, or tests against an in-memory driver).
func NewFactory[T any](sess *session.Session[T], schema criteria.Schema) *Factory[T] {
	return &Factory[T]{fixed: sess, schema: schema}
}

// NewFactoryFunc returns a Factory that resolves its session through
// supplier on every access.
func NewFactoryFunc[T any](supplier SessionSupplier[T], schema criteria.Schema) *Factory[T] {
	return &Factory[T]{supplier: supplier, schema: schema}
}

// session resolves the currently active session: the supplier is called
// fresh every time one is configured, never memoized onto the Factory.
func (f *Factory[T]) session() *session.Session[T] {
	if f.supplier != nil {
		return f.supplier()
	}
	return f.fixed
}

// Query opens a new Query[T] rooted at the factory's entity.
func (f *Factory[T]) Query() *query.Query[T] {
	return query.New(f.session(), f.schema)
}

// SelectFrom is an alias of Query.
func (f *Factory[T]) SelectFrom() *query.Query[T] {
	return f.Query()
}
