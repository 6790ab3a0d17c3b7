package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/soyesenna/helix-query-sub000/criteria"
	"github.com/soyesenna/helix-query-sub000/engine"
	"github.com/soyesenna/helix-query-sub000/expr"
	"github.com/soyesenna/helix-query-sub000/herrors"
	"github.com/soyesenna/helix-query-sub000/session"
)

// build compiles the accumulated state into a fresh Selector and the
// criteria.Context that produced it, returning whether the result set
// needs DISTINCT. When downgradeFetch is true, registered fetch joins are
// materialized as plain joins instead (phase 1 of two-phase pagination and
// bulk deletion never need the fetch bookkeeping).
//
// distinct is reported rather than applied directly so callers building a
// raw aggregate projection (Count) can decide for themselves how to express
// it, instead of fighting a Selector that already called Distinct().
func (q *Query[T]) build(downgradeFetch bool) (*session.Selector, *criteria.Context, bool) {
	sel := q.sess.Selector()
	ctx := criteria.NewContext(sel, q.sess.Dialect(), "t0", q.schema)

	for _, j := range q.joins {
		if j.fetch && !downgradeFetch {
			ctx.GetOrCreateFetch(j.relation)
		} else {
			ctx.GetOrCreateJoin(j.relation)
		}
	}

	if pred := q.wb.Predicate(); pred != nil {
		sql, args := criteria.Compile(pred, ctx)
		sel.Where(sql, args...)
	}

	if len(q.groupBy) > 0 {
		groupExprs := make([]string, len(q.groupBy))
		for i, g := range q.groupBy {
			sql, _ := criteria.Compile(g, ctx)
			groupExprs[i] = sql
		}
		sel.GroupBy(groupExprs...)
	}

	if q.having != nil {
		sql, args := criteria.Compile(q.having, ctx)
		sel.Having(sql, args...)
	}

	for _, o := range q.order {
		sql, _ := criteria.Compile(o.Target, ctx)
		if o.Dir == expr.Desc {
			sel.OrderByDesc(sql, nullsHint(o.Nulls))
		} else {
			sel.OrderByAsc(sql, nullsHint(o.Nulls))
		}
	}

	collectionFetches := q.collectionFetchCount()
	if collectionFetches >= 2 {
		slog.Warn("query: two or more collection fetch joins in one query", "count", collectionFetches)
	}
	return sel, ctx, q.distinct || collectionFetches > 0
}

func nullsHint(n expr.NullHandling) string {
	switch n {
	case expr.NullsFirst:
		return "FIRST"
	case expr.NullsLast:
		return "LAST"
	default:
		return ""
	}
}

// relationMeta walks relationPath segment by segment against q.schema,
// mirroring criteria.Context.materialize's own traversal, to answer
// whether the final segment is a to-many relation.
func (q *Query[T]) relationMeta(relationPath string) (criteria.RelationMeta, bool) {
	schema := q.schema
	var meta criteria.RelationMeta
	for _, seg := range strings.Split(relationPath, ".") {
		m, next, ok := schema.Relation(seg)
		if !ok {
			return criteria.RelationMeta{}, false
		}
		meta, schema = m, next
	}
	return meta, true
}

// collectionFetchCount counts registered fetch joins whose target is a
// to-many relation: two-phase pagination trigger and
// Decision D3's always-DISTINCT rule both key off this.
func (q *Query[T]) collectionFetchCount() int {
	n := 0
	for _, j := range q.joins {
		if !j.fetch {
			continue
		}
		if meta, ok := q.relationMeta(j.relation); ok && meta.Collection {
			n++
		}
	}
	return n
}

// hydrate runs every registered fetch join's Preloader over rows, the
// second query per relation that stands in for JPA-style fetch-join row
// materialization (see Preloader's doc comment).
func (q *Query[T]) hydrate(ctx context.Context, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	for _, j := range q.joins {
		if !j.fetch || j.preloader == nil {
			continue
		}
		if err := j.preloader(ctx, rows); err != nil {
			return fmt.Errorf("query: preload %s: %w", j.relation, err)
		}
	}
	return nil
}

// needsTwoPhase implements trigger condition: any collection
// fetch join registered, combined with an explicit offset or limit.
func (q *Query[T]) needsTwoPhase() bool {
	return q.collectionFetchCount() > 0 && (q.limit != nil || q.offset != nil)
}

// List runs the query and returns every matching row, hydrating any
// registered fetch joins. Two-phase pagination engages automatically when
// needsTwoPhase reports true.
func (q *Query[T]) List(ctx context.Context) ([]*T, error) {
	if q.needsTwoPhase() {
		return q.listTwoPhase(ctx, q.limit, q.offset)
	}
	return q.listSinglePhase(ctx, q.limit, q.offset)
}

func (q *Query[T]) listSinglePhase(ctx context.Context, limit, offset *int) ([]*T, error) {
	sel, _, distinct := q.build(false)
	if probe, _ := sel.Build(); strings.Contains(probe, " JOIN ") {
		// A bare "SELECT *" would pull every joined table's columns onto the
		// row alongside t0's, breaking the mapper's fixed-position Scan.
		// That holds for registered joins and for the auto-join a nested
		// relation path creates alike, so the rendered statement is checked
		// rather than q.joins. Restrict the projection back to the root
		// entity's own columns.
		sel.Select(q.rootColumns()...)
	}
	if distinct {
		sel.Distinct()
	}
	if limit != nil {
		sel.Limit(*limit)
	}
	if offset != nil {
		sel.Offset(*offset)
	}
	sqlStr, args := sel.Build()
	rows, err := q.sess.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	if err := q.hydrate(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// listTwoPhase implements split-query pagination: phase 1
// fetches just the identifier column (with fetch joins downgraded to plain
// joins) under the requested limit/offset; phase 2 re-fetches full rows by
// identifier, with fetch joins restored, and the result is reordered back
// into phase 1's order since a SQL `IN` clause does not preserve it.
func (q *Query[T]) listTwoPhase(ctx context.Context, limit, offset *int) ([]*T, error) {
	idCol, ok := q.sess.HasSingleIdentifier()
	if !ok {
		return nil, herrors.UnsupportedShapef("query: two-phase pagination requires a single identifier column")
	}
	dialect := q.sess.Dialect()
	rootID := session.QuoteIdent(dialect, "t0") + "." + session.QuoteIdent(dialect, idCol)

	sel, _, distinct := q.build(true)
	// Some drivers (Postgres) reject SELECT DISTINCT ... ORDER BY when the
	// order column isn't in the select list, so the order columns ride
	// along here and are discarded below, keeping only the identifier.
	orderCols := sel.OrderExprs()
	sel.Select(append([]string{rootID}, orderCols...)...)
	if distinct {
		sel.Distinct()
	}
	if limit != nil {
		sel.Limit(*limit)
	}
	if offset != nil {
		sel.Offset(*offset)
	}
	phase1SQL, phase1Args := sel.Build()
	idRows, err := q.sess.ScanRaw(ctx, phase1SQL, phase1Args...)
	if err != nil {
		return nil, fmt.Errorf("query: two-phase pagination phase 1: %w", err)
	}
	if len(idRows) == 0 {
		return nil, nil
	}
	ids := make([]any, len(idRows))
	for i, r := range idRows {
		ids[i] = r[0]
	}

	sel2 := q.sess.Selector()
	ctx2 := criteria.NewContext(sel2, dialect, "t0", q.schema)
	collectionFetches := 0
	for _, j := range q.joins {
		if !j.fetch {
			continue
		}
		ctx2.GetOrCreateFetch(j.relation)
		if meta, ok := q.relationMeta(j.relation); ok && meta.Collection {
			collectionFetches++
		}
	}
	sel2.Where(rootID+" IN ("+placeholders(len(ids))+")", ids...)
	if len(q.joins) > 0 {
		sel2.Select(q.rootColumns()...)
	}
	if collectionFetches > 0 {
		sel2.Distinct()
	}
	phase2SQL, phase2Args := sel2.Build()
	rows, err := q.sess.Query(ctx, phase2SQL, phase2Args...)
	if err != nil {
		return nil, fmt.Errorf("query: two-phase pagination phase 2: %w", err)
	}

	mapper := q.sess.Mapper()
	reordered := engine.ReorderByKeys(rows, ids, mapper.ID)

	if err := q.hydrate(ctx, reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

// rootColumns renders the root entity's own columns, qualified with the t0
// alias, for use as an explicit projection whenever a join is in play (see
// listSinglePhase).
func (q *Query[T]) rootColumns() []string {
	dialect := q.sess.Dialect()
	alias := session.QuoteIdent(dialect, "t0")
	cols := q.sess.Mapper().Columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + session.QuoteIdent(dialect, c)
	}
	return out
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}

// QueryOne returns the single matching row, or ErrExpectationViolation when
// more than one matches, or a *herrors.NotFoundError when none do.
// At most two rows are ever fetched.
func (q *Query[T]) QueryOne(ctx context.Context) (*T, error) {
	rows, err := q.limitedList(ctx, 2)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, herrors.NewNotFoundError(q.sess.Table())
	case 1:
		return rows[0], nil
	default:
		return nil, herrors.Expectationf("query: queryOne matched %d rows", len(rows))
	}
}

// QueryOneOrNull is QueryOne, but returns (nil, nil) instead of a not-found
// error when nothing matches.
func (q *Query[T]) QueryOneOrNull(ctx context.Context) (*T, error) {
	rows, err := q.limitedList(ctx, 2)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, herrors.Expectationf("query: queryOneOrNull matched %d rows", len(rows))
	}
}

// QueryFirstOrNull returns the first matching row, or (nil, nil) when
// nothing matches. Only one row is ever fetched.
func (q *Query[T]) QueryFirstOrNull(ctx context.Context) (*T, error) {
	rows, err := q.limitedList(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// limitedList runs the query with a synthetic max-results of n, overriding
// any explicit Limit/Offset: single-result terminals own their own result
// cardinality. A registered collection fetch join still triggers two-phase
// execution.
func (q *Query[T]) limitedList(ctx context.Context, n int) ([]*T, error) {
	if q.collectionFetchCount() > 0 {
		limit := n
		return q.listTwoPhase(ctx, &limit, nil)
	}
	return q.listSinglePhase(ctx, &n, nil)
}

// Count is always expressed as a driver-side aggregate and never routed
// through two-phase logic: a DISTINCT result set counts
// distinct root identifiers, an ordinary one counts every row.
func (q *Query[T]) Count(ctx context.Context) (int64, error) {
	sel, _, distinct := q.build(false)
	countExpr := "*"
	if distinct {
		if idCol, ok := q.sess.HasSingleIdentifier(); ok {
			dialect := q.sess.Dialect()
			countExpr = "DISTINCT " + session.QuoteIdent(dialect, "t0") + "." + session.QuoteIdent(dialect, idCol)
		}
	}
	sel.Select("COUNT(" + countExpr + ")")
	sqlStr, args := sel.Build()
	return q.sess.Scalar(ctx, sqlStr, args...)
}

// Exists reports whether any row matches, via a LIMIT 1 projection rather
// than a full count.
func (q *Query[T]) Exists(ctx context.Context) (bool, error) {
	sel, _, _ := q.build(false)
	sel.Select("1")
	sel.Limit(1)
	sqlStr, args := sel.Build()
	rows, err := q.sess.ScanRaw(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Page runs the content query and a count query concurrently, returning
// both alongside the Pageable that produced them.
func (q *Query[T]) Page(ctx context.Context) (*Page[T], error) {
	var pageable Pageable
	if q.pageable != nil {
		pageable = *q.pageable
	}
	g, gctx := errgroup.WithContext(ctx)
	var content []*T
	var total int64
	g.Go(func() error {
		var err error
		content, err = q.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = q.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Page[T]{Content: content, Total: total, Pageable: pageable}, nil
}

// Delete is managed deletion: it requires a non-empty
// predicate, selects matching entities through the normal query path, and
// removes each through the session so lifecycle semantics are preserved.
func (q *Query[T]) Delete(ctx context.Context) (int64, error) {
	if q.wb.Predicate() == nil {
		return 0, herrors.Unboundedf("query: delete requires a predicate")
	}
	return q.removeMatching(ctx)
}

// DeleteAll is Delete without the non-empty-predicate requirement.
func (q *Query[T]) DeleteAll(ctx context.Context) (int64, error) {
	return q.removeMatching(ctx)
}

// DeleteIfExists is Delete, but raises ErrExpectationViolation instead of
// succeeding silently when nothing matched.
func (q *Query[T]) DeleteIfExists(ctx context.Context) (int64, error) {
	if q.wb.Predicate() == nil {
		return 0, herrors.Unboundedf("query: deleteIfExists requires a predicate")
	}
	n, err := q.removeMatching(ctx)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, herrors.Expectationf("query: deleteIfExists matched nothing")
	}
	return n, nil
}

// DeleteExpecting counts matches first and aborts without removing
// anything if the count differs from want.
func (q *Query[T]) DeleteExpecting(ctx context.Context, want int64) (int64, error) {
	if q.wb.Predicate() == nil {
		return 0, herrors.Unboundedf("query: deleteExpecting requires a predicate")
	}
	got, err := q.Count(ctx)
	if err != nil {
		return 0, err
	}
	if got != want {
		return 0, herrors.Expectationf("query: deleteExpecting(%d) matched %d", want, got)
	}
	return q.removeMatching(ctx)
}

// DeleteAndReturn removes matching entities and returns the removed
// values.
func (q *Query[T]) DeleteAndReturn(ctx context.Context) ([]*T, error) {
	if q.wb.Predicate() == nil {
		return nil, herrors.Unboundedf("query: deleteAndReturn requires a predicate")
	}
	rows, err := q.List(ctx)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, r := range rows {
		if err := q.sess.Remove(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := herrors.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteAndFlush removes matching entities and then flushes, forcing
// write-order against the persistence context; this
// Session's Flush is a no-op (see session.Session.Flush), so the call
// exists for API completeness with callers written against a buffering
// persistence context.
func (q *Query[T]) DeleteAndFlush(ctx context.Context) (int64, error) {
	n, err := q.Delete(ctx)
	if err != nil {
		return n, err
	}
	return n, q.sess.Flush(ctx)
}

func (q *Query[T]) removeMatching(ctx context.Context) (int64, error) {
	rows, err := q.List(ctx)
	if err != nil {
		return 0, err
	}
	var errs []error
	var n int64
	for _, r := range rows {
		if err := q.sess.Remove(ctx, r); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	if err := herrors.NewAggregateError(errs...); err != nil {
		return n, err
	}
	return n, nil
}

// DeleteBulk is bulk deletion: it requires a non-empty
// predicate and emits a single DELETE statement directly against the
// driver, bypassing the persistence context, lifecycle callbacks, and
// cascade.
func (q *Query[T]) DeleteBulk(ctx context.Context) (int64, error) {
	if q.wb.Predicate() == nil {
		return 0, herrors.Unboundedf("query: deleteBulk requires a predicate")
	}
	return q.execDelete(ctx)
}

// DeleteBulkAll is DeleteBulk without the non-empty-predicate requirement.
func (q *Query[T]) DeleteBulkAll(ctx context.Context) (int64, error) {
	return q.execDelete(ctx)
}

func (q *Query[T]) execDelete(ctx context.Context) (int64, error) {
	sel, _, _ := q.build(true)
	sqlStr, args := sel.BuildDelete()
	return q.sess.Exec(ctx, sqlStr, args...)
}
