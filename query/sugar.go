package query

import "github.com/soyesenna/helix-query-sub000/expr"

// Typed sugar is implemented as free generic functions
// rather than methods on Query[T]: Go does not allow a method to introduce
// a type parameter beyond its receiver's, so a hypothetical
// `func (q *Query[T]) WhereEqual[V any](f field.HelixField[V], v V)` is not
// legal Go. Each function below accepts the builder plus a field satisfying
// a small local capability interface built against the field package's
// actual method sets, and folds the resulting predicate into the builder
// exactly as Where/Or do.
//
// Callers for whom Go cannot infer V from the field argument alone supply
// it explicitly, e.g. query.WhereEqual[User, string](q, user.Name, "ada").
// This is an accepted ergonomics trade-off, not a defect.

type eqField[V any] interface {
	Eq(V) *expr.Predicate
	NotEq(V) *expr.Predicate
}

type nullField interface {
	IsNull() *expr.Predicate
	IsNotNull() *expr.Predicate
}

type inField[V any] interface {
	In([]V) *expr.Predicate
	NotIn([]V) *expr.Predicate
}

type orderedField[V any] interface {
	Lt(V) *expr.Predicate
	Lte(V) *expr.Predicate
	Gt(V) *expr.Predicate
	Gte(V) *expr.Predicate
	Between(V, V) *expr.Predicate
}

type likeField interface {
	Like(string) *expr.Predicate
}

type containsField interface {
	Contains(string) *expr.Predicate
}

type prefixField interface {
	StartsWith(string) *expr.Predicate
}

type suffixField interface {
	EndsWith(string) *expr.Predicate
}

type emptyField interface {
	IsEmpty() *expr.Predicate
	IsNotEmpty() *expr.Predicate
}

type temporalField interface {
	BeforeNow() *expr.Predicate
	AfterNow() *expr.Predicate
}

type orderableField interface {
	Asc() expr.OrderSpec
	Desc() expr.OrderSpec
}

// WhereEqual and OrEqual fold f.Eq(v) into the builder with AND/OR.
func WhereEqual[T any, V any](q *Query[T], f eqField[V], v V) *Query[T] { return q.Where(f.Eq(v)) }
func OrEqual[T any, V any](q *Query[T], f eqField[V], v V) *Query[T]    { return q.Or(f.Eq(v)) }

// WhereNotEqual and OrNotEqual fold f.NotEq(v).
func WhereNotEqual[T any, V any](q *Query[T], f eqField[V], v V) *Query[T] {
	return q.Where(f.NotEq(v))
}
func OrNotEqual[T any, V any](q *Query[T], f eqField[V], v V) *Query[T] { return q.Or(f.NotEq(v)) }

// WhereGreaterThan and OrGreaterThan fold f.Gt(v).
func WhereGreaterThan[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Where(f.Gt(v))
}
func OrGreaterThan[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Or(f.Gt(v))
}

// WhereLessThan and OrLessThan fold f.Lt(v).
func WhereLessThan[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Where(f.Lt(v))
}
func OrLessThan[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] { return q.Or(f.Lt(v)) }

// WhereGreaterThanOrEqual and OrGreaterThanOrEqual fold f.Gte(v).
func WhereGreaterThanOrEqual[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Where(f.Gte(v))
}
func OrGreaterThanOrEqual[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Or(f.Gte(v))
}

// WhereLessThanOrEqual and OrLessThanOrEqual fold f.Lte(v).
func WhereLessThanOrEqual[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Where(f.Lte(v))
}
func OrLessThanOrEqual[T any, V any](q *Query[T], f orderedField[V], v V) *Query[T] {
	return q.Or(f.Lte(v))
}

// WhereBetween and OrBetween fold f.Between(lo, hi).
func WhereBetween[T any, V any](q *Query[T], f orderedField[V], lo, hi V) *Query[T] {
	return q.Where(f.Between(lo, hi))
}
func OrBetween[T any, V any](q *Query[T], f orderedField[V], lo, hi V) *Query[T] {
	return q.Or(f.Between(lo, hi))
}

// WhereIn and OrIn fold f.In(vs). An empty vs is a documented no-op
// (field.Simple.In), so it folds in nothing rather than AlwaysFalse.
func WhereIn[T any, V any](q *Query[T], f inField[V], vs []V) *Query[T] { return q.Where(f.In(vs)) }
func OrIn[T any, V any](q *Query[T], f inField[V], vs []V) *Query[T]    { return q.Or(f.In(vs)) }

// WhereNotIn and OrNotIn fold f.NotIn(vs).
func WhereNotIn[T any, V any](q *Query[T], f inField[V], vs []V) *Query[T] {
	return q.Where(f.NotIn(vs))
}
func OrNotIn[T any, V any](q *Query[T], f inField[V], vs []V) *Query[T] { return q.Or(f.NotIn(vs)) }

// WhereLike and OrLike fold f.Like(pattern).
func WhereLike[T any](q *Query[T], f likeField, pattern string) *Query[T] {
	return q.Where(f.Like(pattern))
}
func OrLike[T any](q *Query[T], f likeField, pattern string) *Query[T] { return q.Or(f.Like(pattern)) }

// WhereContains and OrContains fold f.Contains(s).
func WhereContains[T any](q *Query[T], f containsField, s string) *Query[T] {
	return q.Where(f.Contains(s))
}
func OrContains[T any](q *Query[T], f containsField, s string) *Query[T] {
	return q.Or(f.Contains(s))
}

// WhereStartsWith and OrStartsWith fold f.StartsWith(s).
func WhereStartsWith[T any](q *Query[T], f prefixField, s string) *Query[T] {
	return q.Where(f.StartsWith(s))
}
func OrStartsWith[T any](q *Query[T], f prefixField, s string) *Query[T] {
	return q.Or(f.StartsWith(s))
}

// WhereEndsWith and OrEndsWith fold f.EndsWith(s).
func WhereEndsWith[T any](q *Query[T], f suffixField, s string) *Query[T] {
	return q.Where(f.EndsWith(s))
}
func OrEndsWith[T any](q *Query[T], f suffixField, s string) *Query[T] {
	return q.Or(f.EndsWith(s))
}

// WhereIsNull and OrIsNull fold f.IsNull().
func WhereIsNull[T any](q *Query[T], f nullField) *Query[T] { return q.Where(f.IsNull()) }
func OrIsNull[T any](q *Query[T], f nullField) *Query[T]    { return q.Or(f.IsNull()) }

// WhereIsNotNull and OrIsNotNull fold f.IsNotNull().
func WhereIsNotNull[T any](q *Query[T], f nullField) *Query[T] { return q.Where(f.IsNotNull()) }
func OrIsNotNull[T any](q *Query[T], f nullField) *Query[T]    { return q.Or(f.IsNotNull()) }

// WhereIsEmpty and OrIsEmpty fold f.IsEmpty(), shared by string and
// collection fields (field.StringField, field.CollectionField).
func WhereIsEmpty[T any](q *Query[T], f emptyField) *Query[T] { return q.Where(f.IsEmpty()) }
func OrIsEmpty[T any](q *Query[T], f emptyField) *Query[T]    { return q.Or(f.IsEmpty()) }

// WhereIsNotEmpty and OrIsNotEmpty fold f.IsNotEmpty().
func WhereIsNotEmpty[T any](q *Query[T], f emptyField) *Query[T] { return q.Where(f.IsNotEmpty()) }
func OrIsNotEmpty[T any](q *Query[T], f emptyField) *Query[T]    { return q.Or(f.IsNotEmpty()) }

// WhereBeforeNow and OrBeforeNow fold f.BeforeNow().
func WhereBeforeNow[T any](q *Query[T], f temporalField) *Query[T] { return q.Where(f.BeforeNow()) }
func OrBeforeNow[T any](q *Query[T], f temporalField) *Query[T]    { return q.Or(f.BeforeNow()) }

// WhereAfterNow and OrAfterNow fold f.AfterNow().
func WhereAfterNow[T any](q *Query[T], f temporalField) *Query[T] { return q.Where(f.AfterNow()) }
func OrAfterNow[T any](q *Query[T], f temporalField) *Query[T]    { return q.Or(f.AfterNow()) }

// OrderByAsc and OrderByDesc append f's order specifier to the query.
func OrderByAsc[T any](q *Query[T], f orderableField) *Query[T]  { return q.OrderBy(f.Asc()) }
func OrderByDesc[T any](q *Query[T], f orderableField) *Query[T] { return q.OrderBy(f.Desc()) }
