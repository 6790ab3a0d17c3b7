package query

import "github.com/soyesenna/helix-query-sub000/expr"

// Pageable is the core's own page-request shape: a page number, page size, and an ordered list of sort
// properties named by attribute rather than by field descriptor, so a
// caller can build one from an HTTP query string without importing the
// field package.
type Pageable struct {
	Page int
	Size int
	Sort []SortProperty
}

// SortProperty names one sort term by attribute name, resolved against a
// FieldResolver at Apply time.
type SortProperty struct {
	Name string
	Dir  expr.Direction
}

// FieldResolver maps a Pageable's sort property name to the IR node it
// sorts on, the adapter seam non-goal calls for: the core
// never guesses a column from a string itself.
type FieldResolver func(name string) expr.Node

// ApplyPageable applies p's offset/limit and, via resolver, its sort
// properties to q. A Pageable with Size <= 0 applies no limit.
func ApplyPageable[T any](q *Query[T], p Pageable, resolver FieldResolver) *Query[T] {
	q.pageable = &p
	if p.Size > 0 {
		q.Limit(p.Size)
		if p.Page > 0 {
			q.Offset(p.Page * p.Size)
		}
	}
	for _, s := range p.Sort {
		target := resolver(s.Name)
		if target == nil {
			continue
		}
		if s.Dir == expr.Desc {
			q.OrderBy(expr.OrderDesc(target))
		} else {
			q.OrderBy(expr.OrderAsc(target))
		}
	}
	return q
}

// ApplyPageableOrderBy applies p's offset/limit like ApplyPageable, but
// orders by the single explicit target instead of resolving Sort
// properties, for callers that already hold the field descriptor they
// want to sort by.
func ApplyPageableOrderBy[T any](q *Query[T], p Pageable, target expr.Node, asc bool) *Query[T] {
	q.pageable = &p
	if p.Size > 0 {
		q.Limit(p.Size)
		if p.Page > 0 {
			q.Offset(p.Page * p.Size)
		}
	}
	if asc {
		q.OrderBy(expr.OrderAsc(target))
	} else {
		q.OrderBy(expr.OrderDesc(target))
	}
	return q
}

// ApplyPageableOrderByAsc and ApplyPageableOrderByDesc are the asc/desc
// convenience variants alongside pageableOrderBy.
func ApplyPageableOrderByAsc[T any](q *Query[T], p Pageable, target expr.Node) *Query[T] {
	return ApplyPageableOrderBy(q, p, target, true)
}

func ApplyPageableOrderByDesc[T any](q *Query[T], p Pageable, target expr.Node) *Query[T] {
	return ApplyPageableOrderBy(q, p, target, false)
}

// Page is the engine's own page result:
// the current page's content, the total row count across all pages, and
// the Pageable that produced it, echoed back for the caller's convenience.
type Page[T any] struct {
	Content  []*T
	Total    int64
	Pageable Pageable
}
