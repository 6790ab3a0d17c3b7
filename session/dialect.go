// Package session adapts database/sql into the narrow persistence-runtime
// contract the criteria compiler and execution engine are written against
//: persist/merge/remove/refresh/detach/flush/findByID,
// criteria/query construction, path navigation, join materialization, and
// result-set execution.
package session

import (
	"strconv"
	"strings"
)

// Dialect names identifying the SQL driver a Driver was opened against.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// normalize maps a driver name (as passed to sql.Open) to one of the three
// supported dialects.
func normalize(driverName string) string {
	switch {
	case strings.HasPrefix(driverName, MySQL):
		return MySQL
	case strings.HasPrefix(driverName, Postgres):
		return Postgres
	case strings.HasPrefix(driverName, "sqlite"):
		return SQLite
	default:
		return driverName
	}
}

// QuoteIdent quotes a SQL identifier for the given dialect.
func QuoteIdent(dialect, ident string) string {
	switch dialect {
	case MySQL:
		return "`" + ident + "`"
	default:
		return `"` + ident + `"`
	}
}

// supportsNullsOrdering reports whether the dialect accepts an explicit
// NULLS FIRST/NULLS LAST clause on ORDER BY (Decision D2: mysql has no
// portable equivalent and the hint is dropped there).
func supportsNullsOrdering(dialect string) bool {
	return dialect == Postgres || dialect == SQLite
}

// Placeholder returns the i'th (1-based) bind placeholder for dialect.
func Placeholder(dialect string, i int) string {
	if dialect == Postgres {
		return "$" + strconv.Itoa(i)
	}
	return "?"
}
