package session

// Blank-imported for their database/sql driver registration side effects,
// so Open("mysql", dsn) / Open("postgres", dsn) / Open("sqlite", dsn) work
// out of the box against any of the three dialects this package names
// (MySQL, Postgres, SQLite), without every caller having to remember which
// driver package backs which dialect string.
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
