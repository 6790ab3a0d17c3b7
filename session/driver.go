package session

import (
	"context"
	"database/sql"
	"fmt"
)

// ExecQuerier wraps the standard Exec and Query methods: both *sql.DB and
// *sql.Tx satisfy it, letting a Conn transparently wrap either.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn pairs an ExecQuerier with the dialect name needed to render
// dialect-specific SQL (quoting, placeholders, NULLS ordering).
type Conn struct {
	ExecQuerier
	Dialect string
}

// Driver is the top-level handle returned by Open: a Conn over a *sql.DB
// plus transaction support.
type Driver struct {
	Conn
	db *sql.DB
}

// Open wraps database/sql.Open and tags the resulting Driver with its
// normalized dialect.
func Open(driverName, dataSourceName string) (*Driver, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", driverName, err)
	}
	return OpenDB(driverName, db), nil
}

// OpenDB wraps an already-constructed *sql.DB with a Driver.
func OpenDB(driverName string, db *sql.DB) *Driver {
	d := normalize(driverName)
	return &Driver{Conn: Conn{ExecQuerier: db, Dialect: d}, db: db}
}

// DB returns the underlying *sql.DB, e.g. to call Stats/SetMaxOpenConns.
func (d *Driver) DB() *sql.DB { return d.db }

// Close closes the underlying connection pool.
func (d *Driver) Close() error { return d.db.Close() }

// Tx begins a transaction. The returned Tx's Conn shares the same dialect.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx begins a transaction with explicit options.
func (d *Driver) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("session: begin tx: %w", err)
	}
	return &Tx{Conn: Conn{ExecQuerier: tx, Dialect: d.Dialect}, tx: tx}, nil
}

// Tx wraps a live *sql.Tx with the dialect-aware Conn.
type Tx struct {
	Conn
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback aborts the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }
