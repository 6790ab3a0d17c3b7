// Package where implements the mutable conjunctive/disjunctive predicate
// accumulator: a staging area that the fluent query builder
// and its typed sugar methods fold clauses into before a terminal operation
// lowers the accumulated expr.Predicate through the criteria compiler.
//
// The accumulator never materializes expr.True spuriously: the distinction
// between "no predicate at all" and "a predicate that always matches" is
// preserved until something downstream asks for the current value.
package where

import "github.com/soyesenna/helix-query-sub000/expr"

// Builder accumulates a single expr.Predicate by AND/OR combination. The
// zero value is ready to use and holds no predicate. A Builder is not safe
// for concurrent mutation; independent builders over shared,
// immutable descriptors are fine.
type Builder struct {
	current *expr.Predicate
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Predicate returns the accumulated predicate, or nil if nothing has been
// added yet.
func (b *Builder) Predicate() *expr.Predicate { return b.current }

// And combines p into the accumulator with AND. A nil p is a no-op.
func (b *Builder) And(p *expr.Predicate) *Builder {
	if p == nil {
		return b
	}
	if b.current == nil {
		b.current = p
		return b
	}
	b.current = expr.And(b.current, p)
	return b
}

// Or combines p into the accumulator with OR. A nil p is a no-op.
func (b *Builder) Or(p *expr.Predicate) *Builder {
	if p == nil {
		return b
	}
	if b.current == nil {
		b.current = p
		return b
	}
	b.current = expr.Or(b.current, p)
	return b
}

// AndIf ANDs p into the accumulator only when cond is true; p itself is
// built by the caller before the call, whatever cond is.
func (b *Builder) AndIf(cond bool, p *expr.Predicate) *Builder {
	if !cond {
		return b
	}
	return b.And(p)
}

// AndIfNotNull calls supplier and ANDs the result only when value is
// non-nil, so the supplier never has to guard against a nil argument.
func AndIfNotNull[V any](b *Builder, value *V, supplier func(V) *expr.Predicate) *Builder {
	if value == nil {
		return b
	}
	return b.And(supplier(*value))
}

// AndIfNotEmpty calls supplier and ANDs the result only when s is non-empty.
func AndIfNotEmpty(b *Builder, s string, supplier func(string) *expr.Predicate) *Builder {
	if s == "" {
		return b
	}
	return b.And(supplier(s))
}

// AndGroup instantiates a nested Builder, passes it to consumer, and folds
// the resulting predicate into the outer accumulator with AND. An empty
// nested group (consumer adds nothing) is discarded rather than folded in
// as expr.True.
func (b *Builder) AndGroup(consumer func(*Builder)) *Builder {
	nested := New()
	consumer(nested)
	return b.And(nested.Predicate())
}

// OrGroup is the OR counterpart of AndGroup.
func (b *Builder) OrGroup(consumer func(*Builder)) *Builder {
	nested := New()
	consumer(nested)
	return b.Or(nested.Predicate())
}

// Not wraps the current predicate with NOT. A no-op when the accumulator is
// empty.
func (b *Builder) Not() *Builder {
	b.current = expr.Not(b.current)
	return b
}

// AllOf folds ps with AND, ignoring nils, and ANDs the fold into the
// accumulator.
func (b *Builder) AllOf(ps ...*expr.Predicate) *Builder {
	return b.And(expr.And(ps...))
}

// AnyOf folds ps with OR, ignoring nils, and ANDs the fold into the
// accumulator.
func (b *Builder) AnyOf(ps ...*expr.Predicate) *Builder {
	return b.And(expr.Or(ps...))
}
