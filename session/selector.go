package session

import (
	"strconv"
	"strings"
)

// JoinType is the SQL join keyword a registered join renders with; plain
// and fetch joins are not distinguished here.
type JoinType string

const (
	LeftJoin  JoinType = "LEFT JOIN"
	InnerJoin JoinType = "JOIN"
)

// joinClause is one materialized join, already rendered by the criteria
// compiler's path resolver.
type joinClause struct {
	kind  JoinType
	table string
	alias string
	on    string
}

// orderClause is one materialized ORDER BY term.
type orderClause struct {
	expr  string
	dir   string // "ASC" or "DESC"
	nulls string // "", "FIRST", or "LAST"
}

// Selector assembles a single SELECT statement incrementally: the criteria
// compiler (package criteria) lowers an expr.Node tree into clause
// fragments and appends them here; the execution engine (package query)
// calls Build once per terminal operation and hands the result to a Conn.
//
// A Selector is not safe for concurrent use, mirroring the single-builder-
// per-execution rule the criteria Context enforces on joins.
type Selector struct {
	dialect    string
	table      string
	alias      string
	distinct   bool
	columns    []string
	joins      []joinClause
	whereParts []string
	whereArgs  []any
	groupBy    []string
	havingPart string
	havingArgs []any
	order      []orderClause
	limit      *int
	offset     *int
}

// NewSelector returns a Selector over table aliased as alias, rendering SQL
// for dialect.
func NewSelector(dialect, table, alias string) *Selector {
	return &Selector{dialect: dialect, table: table, alias: alias}
}

// Select sets the projection column list; called with no arguments, Build
// renders "SELECT *".
func (s *Selector) Select(cols ...string) *Selector {
	s.columns = cols
	return s
}

// Distinct marks the statement DISTINCT.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// Join registers a join; table/alias/on are already-quoted SQL fragments
// produced by the criteria compiler's path resolver.
func (s *Selector) Join(kind JoinType, table, alias, on string) *Selector {
	s.joins = append(s.joins, joinClause{kind: kind, table: table, alias: alias, on: on})
	return s
}

// Where ANDs clause (with its bind args) onto the accumulated WHERE clause.
func (s *Selector) Where(clause string, args ...any) *Selector {
	if clause == "" {
		return s
	}
	s.whereParts = append(s.whereParts, clause)
	s.whereArgs = append(s.whereArgs, args...)
	return s
}

// GroupBy appends grouping expressions.
func (s *Selector) GroupBy(exprs ...string) *Selector {
	s.groupBy = append(s.groupBy, exprs...)
	return s
}

// Having sets the HAVING clause (overwrites; callers fold multiple
// predicates with AND/OR before calling, same as Where's compiled form).
func (s *Selector) Having(clause string, args ...any) *Selector {
	s.havingPart = clause
	s.havingArgs = args
	return s
}

// OrderByAsc and OrderByDesc append an ORDER BY term with an optional NULLS
// hint; the hint is silently dropped for dialects without NULLS FIRST/LAST
// support (Decision D2).
func (s *Selector) OrderByAsc(expr, nulls string) *Selector  { return s.orderBy(expr, "ASC", nulls) }
func (s *Selector) OrderByDesc(expr, nulls string) *Selector { return s.orderBy(expr, "DESC", nulls) }

func (s *Selector) orderBy(expr, dir, nulls string) *Selector {
	if nulls != "" && !supportsNullsOrdering(s.dialect) {
		nulls = ""
	}
	s.order = append(s.order, orderClause{expr: expr, dir: dir, nulls: nulls})
	return s
}

// OrderExprs returns the compiled expression fragment (without direction
// or NULLS hint) of each accumulated ORDER BY term, in order. Two-phase
// pagination's identifier-only phase 1 query uses this to add the order
// columns to its SELECT list: some drivers (e.g. Postgres) reject a
// DISTINCT select list that omits a column named in ORDER BY.
func (s *Selector) OrderExprs() []string {
	exprs := make([]string, len(s.order))
	for i, o := range s.order {
		exprs[i] = o.expr
	}
	return exprs
}

// Limit and Offset implement setMaxResults/setFirstResult.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

func (s *Selector) Offset(n int) *Selector {
	s.offset = &n
	return s
}

// Clone returns a deep-enough copy that later GroupBy/Having/Limit and other
// mutations of either Selector do not affect the other.
func (s *Selector) Clone() *Selector {
	c := *s
	c.columns = append([]string(nil), s.columns...)
	c.joins = append([]joinClause(nil), s.joins...)
	c.whereParts = append([]string(nil), s.whereParts...)
	c.whereArgs = append([]any(nil), s.whereArgs...)
	c.groupBy = append([]string(nil), s.groupBy...)
	c.havingArgs = append([]any(nil), s.havingArgs...)
	c.order = append([]orderClause(nil), s.order...)
	return &c
}

// Build renders the statement and its bind arguments, using the dialect's
// placeholder style ("?" or "$n").
func (s *Selector) Build() (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(s.columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(QuoteIdent(s.dialect, s.table))
	b.WriteString(" AS ")
	b.WriteString(QuoteIdent(s.dialect, s.alias))

	for _, j := range s.joins {
		b.WriteString(" ")
		b.WriteString(string(j.kind))
		b.WriteString(" ")
		b.WriteString(QuoteIdent(s.dialect, j.table))
		b.WriteString(" AS ")
		b.WriteString(QuoteIdent(s.dialect, j.alias))
		b.WriteString(" ON ")
		b.WriteString(j.on)
	}

	if len(s.whereParts) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.whereParts, " AND "))
		args = append(args, s.whereArgs...)
	}

	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.groupBy, ", "))
	}

	if s.havingPart != "" {
		b.WriteString(" HAVING ")
		b.WriteString(s.havingPart)
		args = append(args, s.havingArgs...)
	}

	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		parts := make([]string, len(s.order))
		for i, o := range s.order {
			parts[i] = o.expr + " " + o.dir
			if o.nulls != "" {
				parts[i] += " NULLS " + o.nulls
			}
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	if s.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*s.offset))
	}

	return rebind(s.dialect, b.String()), args
}

// BuildDelete renders a single-table DELETE against this Selector's table
// and accumulated WHERE clause, ignoring any registered joins: bulk
// deletion bypasses the persistence context entirely and
// issues one portable statement, so a predicate that crosses a relation
// boundary (and therefore needs a join) is not supported here. The table
// keeps its alias so the WHERE clause's column references (rendered
// against that alias by the criteria compiler) still resolve.
func (s *Selector) BuildDelete() (string, []any) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(QuoteIdent(s.dialect, s.table))
	b.WriteString(" AS ")
	b.WriteString(QuoteIdent(s.dialect, s.alias))
	var args []any
	if len(s.whereParts) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.whereParts, " AND "))
		args = append(args, s.whereArgs...)
	}
	return rebind(s.dialect, b.String()), args
}

// rebind rewrites the "?" placeholders written during assembly into the
// dialect's native placeholder style (a no-op for mysql/sqlite).
func rebind(dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(Placeholder(dialect, n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
