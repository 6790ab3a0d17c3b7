package session

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/soyesenna/helix-query-sub000/herrors"
)

// Mapper is the per-entity contract between an entity type T and its table,
// implemented by the application (package gen does not emit it): the metamodel facts the persistence-runtime
// interface needs without resorting to ad hoc reflection
// over application structs at query time.
type Mapper[T any] interface {
	// Table is the unquoted table name.
	Table() string
	// Columns lists every persisted column, in the same order Values and
	// Scan use.
	Columns() []string
	// IDColumn is the single identifier attribute's column name, or "" if
	// the entity has a composite identifier (herrors.ErrUnsupportedEntityShape
	// for any path that requires a single id, e.g. two-phase pagination).
	IDColumn() string
	// ID extracts the identifier value from entity, or nil if unset
	// (save() policy: nil id means persist, not merge).
	ID(entity *T) any
	// SetID writes a generated identifier back onto entity after persist.
	SetID(entity *T, id any)
	// Values returns the column values to bind on INSERT/UPDATE, in
	// Columns order.
	Values(entity *T) []any
	// Scan reads one row into a new *T.
	Scan(rows *sql.Rows) (*T, error)
}

// Session is the narrow persistence-runtime the criteria compiler and
// execution engine are written against: CRUD against a
// single entity type plus the metamodel query two-phase pagination needs.
type Session[T any] struct {
	conn   ExecQuerier
	dialect string
	mapper Mapper[T]
}

// New returns a Session bound to conn (the Conn of a *Driver or *Tx, or a
// Conn whose ExecQuerier is a *StatsDriver) and mapper.
func New[T any](conn Conn, mapper Mapper[T]) *Session[T] {
	return &Session[T]{conn: conn.ExecQuerier, dialect: conn.Dialect, mapper: mapper}
}

// Dialect reports the dialect this session renders SQL for, so package
// criteria can quote identifiers for it; the NULLS FIRST/LAST decision
// (Decision D2) is made by Selector.
func (s *Session[T]) Dialect() string { return s.dialect }

// Selector returns a fresh Selector over this session's table, aliased "t0"
// per the criteria compiler's root-alias convention.
func (s *Session[T]) Selector() *Selector {
	return NewSelector(s.dialect, s.mapper.Table(), "t0")
}

// HasSingleIdentifier answers the metamodel query
func (s *Session[T]) HasSingleIdentifier() (name string, ok bool) {
	col := s.mapper.IDColumn()
	return col, col != ""
}

// Table is the mapper's unquoted table name; package query uses it to label
// the not-found error QueryOne returns.
func (s *Session[T]) Table() string { return s.mapper.Table() }

// Mapper exposes the entity's Mapper so package query can read
// the identifier column (two-phase pagination) and scan result rows.
func (s *Session[T]) Mapper() Mapper[T] { return s.mapper }

// Query runs an arbitrary SELECT against this session's table and scans
// every row through the mapper, for the execution engine's List/Page
// terminals once the criteria compiler has rendered the
// statement.
func (s *Session[T]) Query(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("session: query: %w", err)
	}
	defer rows.Close()
	var out []*T
	for rows.Next() {
		entity, err := s.mapper.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("session: query: scan: %w", err)
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// Exec runs an arbitrary mutating statement (bulk DELETE) and returns the
// number of affected rows.
func (s *Session[T]) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("session: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("session: exec: rows affected: %w", err)
	}
	return n, nil
}

// Scalar runs a single-column, single-row query (COUNT, SUM, ...) and scans
// it into an int64.
func (s *Session[T]) Scalar(ctx context.Context, query string, args ...any) (int64, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("session: scalar: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, rows.Err()
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("session: scalar: scan: %w", err)
	}
	return n, nil
}

// Persist inserts entity and, if the mapper reports a generated id column
// with no value set, writes the new id back onto entity.
func (s *Session[T]) Persist(ctx context.Context, entity *T) error {
	generated := s.mapper.ID(entity) == nil
	idCol := s.mapper.IDColumn()

	allCols := s.mapper.Columns()
	allVals := s.mapper.Values(entity)
	var cols []string
	var vals []any
	for i, c := range allCols {
		if generated && c == idCol {
			continue
		}
		cols = append(cols, c)
		vals = append(vals, allVals[i])
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = Placeholder(s.dialect, i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(s.dialect, s.mapper.Table()),
		quoteColumns(s.dialect, cols),
		joinCSV(placeholders),
	)
	res, err := s.conn.ExecContext(ctx, query, vals...)
	if err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	if generated {
		if id, err := res.LastInsertId(); err == nil && id != 0 {
			s.mapper.SetID(entity, id)
		}
	}
	return nil
}

// Merge updates the row matching entity's identifier and returns the same
// instance, treated as the "managed copy" (save() policy
// does not require a distinct return value in this Go rendition; the
// caller already owns a pointer to the single copy that exists).
func (s *Session[T]) Merge(ctx context.Context, entity *T) (*T, error) {
	id := s.mapper.ID(entity)
	if id == nil {
		return nil, herrors.Expectationf("session: merge requires a non-nil identifier")
	}
	cols := s.mapper.Columns()
	vals := s.mapper.Values(entity)
	idCol := s.mapper.IDColumn()

	var sets []string
	var args []any
	n := 0
	for i, c := range cols {
		if c == idCol {
			continue
		}
		n++
		sets = append(sets, fmt.Sprintf("%s = %s", QuoteIdent(s.dialect, c), Placeholder(s.dialect, n)))
		args = append(args, vals[i])
	}
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = %s",
		QuoteIdent(s.dialect, s.mapper.Table()),
		joinCSV(sets),
		QuoteIdent(s.dialect, idCol),
		Placeholder(s.dialect, n+1),
	)
	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("session: merge: %w", err)
	}
	return entity, nil
}

// Save implements policy: persist when the identifier is
// unset, merge otherwise.
func (s *Session[T]) Save(ctx context.Context, entity *T) (*T, error) {
	if s.mapper.ID(entity) == nil {
		return entity, s.Persist(ctx, entity)
	}
	return s.Merge(ctx, entity)
}

// Remove deletes the row matching entity's identifier.
func (s *Session[T]) Remove(ctx context.Context, entity *T) error {
	id := s.mapper.ID(entity)
	if id == nil {
		return herrors.Expectationf("session: remove requires a non-nil identifier")
	}
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = %s",
		QuoteIdent(s.dialect, s.mapper.Table()),
		QuoteIdent(s.dialect, s.mapper.IDColumn()),
		Placeholder(s.dialect, 1),
	)
	if _, err := s.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}

// Refresh reloads entity's row by identifier and overwrites entity in
// place.
func (s *Session[T]) Refresh(ctx context.Context, entity *T) error {
	id := s.mapper.ID(entity)
	if id == nil {
		return herrors.Expectationf("session: refresh requires a non-nil identifier")
	}
	fresh, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if fresh == nil {
		return herrors.NewNotFoundErrorWithID(s.mapper.Table(), id)
	}
	reflect.ValueOf(entity).Elem().Set(reflect.ValueOf(fresh).Elem())
	return nil
}

// Detach is a semantic no-op: this Session keeps no first-level identity
// map, so every loaded entity is already detached from any persistence
// context by the time the caller holds it. It exists so callers written
// against the narrow interface have something to call.
func (s *Session[T]) Detach(*T) {}

// Flush is a semantic no-op for the same reason Detach is: every Persist/
// Merge/Remove call above executes immediately rather than batching
// through a unit-of-work buffer.
func (s *Session[T]) Flush(context.Context) error { return nil }

// FindByID loads a single row by identifier, or returns (nil, nil) if no
// row matches (the "empty-result signal" ).
func (s *Session[T]) FindByID(ctx context.Context, id any) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = %s",
		quoteColumns(s.dialect, s.mapper.Columns()),
		QuoteIdent(s.dialect, s.mapper.Table()),
		QuoteIdent(s.dialect, s.mapper.IDColumn()),
		Placeholder(s.dialect, 1),
	)
	rows, err := s.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("session: find by id: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	entity, err := s.mapper.Scan(rows)
	if err != nil {
		return nil, fmt.Errorf("session: find by id: scan: %w", err)
	}
	return entity, nil
}

// ScanRaw runs query and returns every row's column values as []any,
// without going through the mapper. The execution engine's two-phase
// pagination uses this for phase 1's identifier-plus-order-
// column projection, where the result shape isn't a *T.
func (s *Session[T]) ScanRaw(ctx context.Context, query string, args ...any) ([][]any, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("session: scan raw: %w", err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("session: scan raw: columns: %w", err)
	}
	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("session: scan raw: scan: %w", err)
		}
		out = append(out, vals)
	}
	return out, rows.Err()
}

func quoteColumns(dialect string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(dialect, c)
	}
	return joinCSV(quoted)
}

func joinCSV(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
