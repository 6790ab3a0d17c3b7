package query

import (
	"context"
	"strconv"

	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/engine"
	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/herrors"
)

// projectRaw renders targets as the select list in place of T's own columns
// and scans every row raw, the shared plumbing behind Select/Tuple/As/
// GroupByCount.
func (q *Query[T]) projectRaw(ctx context.Context, targets ...expr.Node) ([][]any, error) {
	sel, cctx, distinct := q.build(false)
	cols := make([]string, len(targets))
	for i, t := range targets {
		sql, _ := criteria.Compile(t, cctx)
		cols[i] = sql
	}
	sel.Select(cols...)
	if distinct {
		sel.Distinct()
	}
	if q.limit != nil {
		sel.Limit(*q.limit)
	}
	if q.offset != nil {
		sel.Offset(*q.offset)
	}
	sqlStr, args := sel.Build()
	return q.sess.ScanRaw(ctx, sqlStr, args...)
}

// Select projects a single scalar expression and returns one V per row,
// the Go rendition of a single-column JPA criteria query. A row whose scanned value does not assert to V
// raises ErrTranslation rather than panicking.
func Select[T any, V any](ctx context.Context, q *Query[T], target expr.Node) ([]V, error) {
	rows, err := q.projectRaw(ctx, target)
	if err != nil {
		return nil, err
	}
	out := make([]V, len(rows))
	for i, r := range rows {
		v, ok := r[0].(V)
		if !ok {
			return nil, herrors.Translationf("query: select projection value is not the requested type")
		}
		out[i] = v
	}
	return out, nil
}

// Tuple projects multiple expressions and returns each row as a raw []any,
// the multiselect shape
func Tuple[T any](ctx context.Context, q *Query[T], targets ...expr.Node) ([][]any, error) {
	return q.projectRaw(ctx, targets...)
}

// As projects targets and constructs an R per row via build, the Go
// replacement for reflection-based constructor projection: the design
// notes call for a caller-supplied build closure instead of locating a
// matching constructor by reflection over R's fields.
func As[T any, R any](ctx context.Context, q *Query[T], build func(row []any) (R, error), targets ...expr.Node) ([]R, error) {
	rows, err := q.projectRaw(ctx, targets...)
	if err != nil {
		return nil, err
	}
	out := make([]R, len(rows))
	for i, r := range rows {
		v, err := build(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// GroupByCount emits `SELECT target, COUNT(*) ... GROUP BY target` and
// returns an insertion-ordered map from the grouping value to its count
//, using engine.OrderedMap so callers see groups in the
// order the driver returned them rather than Go map iteration order.
func (q *Query[T]) GroupByCount(ctx context.Context, target expr.Node) (*engine.OrderedMap[any, int64], error) {
	sel, cctx, _ := q.build(false)
	sql, _ := criteria.Compile(target, cctx)
	sel.Select(sql, "COUNT(*)")
	sel.GroupBy(sql)
	if q.limit != nil {
		sel.Limit(*q.limit)
	}
	if q.offset != nil {
		sel.Offset(*q.offset)
	}
	sqlStr, args := sel.Build()
	rows, err := q.sess.ScanRaw(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	out := engine.NewOrderedMap[any, int64]()
	for _, r := range rows {
		out.Set(r[0], toInt64(r[1]))
	}
	return out, nil
}

// GroupByKey runs q and folds its results client-side into an
// insertion-ordered map keyed by keyOf, for grouping by a computed key a
// SQL GROUP BY cannot express directly (see GroupByCount for the SQL-level
// aggregate form).
func GroupByKey[T any, K comparable](ctx context.Context, q *Query[T], keyOf func(*T) K) (*engine.OrderedMap[K, []*T], error) {
	rows, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	out := engine.NewOrderedMap[K, []*T]()
	for _, r := range rows {
		k := keyOf(r)
		existing, _ := out.Get(k)
		out.Set(k, append(existing, r))
	}
	return out, nil
}

// toInt64 normalizes a scanned COUNT(*) value across drivers: most return
// int64 directly, but some (notably sqlite text-affinity columns) surface
// it as []byte.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case []byte:
		i, _ := strconv.ParseInt(string(n), 10, 64)
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}
