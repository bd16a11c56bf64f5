package database

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect selects SQL flavour, driver and placeholder style.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect accepts the usual driver spellings.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database dialect %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
// sqlx derives its bindvar style from the same name.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

func (d Dialect) Placeholder() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// resyncIdentitySQL moves an identity sequence past rows inserted with explicit ids.
// SQLite AUTOINCREMENT already tracks max(rowid), so it needs nothing.
func (d Dialect) resyncIdentitySQL(table, column string) string {
	if d != DialectPostgres {
		return ""
	}
	return fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', '%s'), (SELECT COALESCE(MAX(%s), 1) FROM %s))`,
		Quote(table), column, Quote(column), Quote(table),
	)
}
