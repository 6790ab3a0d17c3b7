package field

import (
	"time"

	"github.com/soyesenna/helix-query-sub000/expr"
)

// DateTimeField adds temporal comparisons over ComparableField: chronological
// ordering against a literal instant, and convenience predicates relative to
// the database's current time.
type DateTimeField[T any] struct {
	ComparableField[T, time.Time]
}

// NewDateTime returns a DateTimeField descriptor.
func NewDateTime[T any](name, relationPath string) DateTimeField[T] {
	return DateTimeField[T]{NewComparable[T, time.Time](name, relationPath)}
}

// Before and After are aliases of Lt/Gt with temporal-specific names.
func (f DateTimeField[T]) Before(t time.Time) *expr.Predicate { return f.Lt(t) }
func (f DateTimeField[T]) After(t time.Time) *expr.Predicate  { return f.Gt(t) }

// OnOrBefore and OnOrAfter are aliases of Lte/Gte.
func (f DateTimeField[T]) OnOrBefore(t time.Time) *expr.Predicate { return f.Lte(t) }
func (f DateTimeField[T]) OnOrAfter(t time.Time) *expr.Predicate  { return f.Gte(t) }

func (f DateTimeField[T]) currentTimestamp() *expr.Operation {
	return expr.NewOperation(expr.CurrentTimestampOp, f.ValueType)
}

// BeforeNow and AfterNow compare against the database's current timestamp,
// evaluated by the driver rather than bound as a client-side literal, so
// clock skew between the application host and the database never matters.
func (f DateTimeField[T]) BeforeNow() *expr.Predicate {
	return expr.Lt(f.Path(), f.currentTimestamp())
}

func (f DateTimeField[T]) AfterNow() *expr.Predicate {
	return expr.Gt(f.Path(), f.currentTimestamp())
}
