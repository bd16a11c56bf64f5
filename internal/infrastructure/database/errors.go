package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Execer is satisfied by *DB, *sqlx.DB and *sqlx.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Postgres SQLSTATE codes
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
)

// IsForeignKeyViolation reports a row referencing a missing parent.
func IsForeignKeyViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgForeignKeyViolation
	}
	if ext, ok := sqliteExtendedCode(err); ok {
		return ext == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// IsUniqueViolation reports a duplicate primary or unique key.
func IsUniqueViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgUniqueViolation
	}
	if ext, ok := sqliteExtendedCode(err); ok {
		return ext == sqlite3.ErrConstraintUnique || ext == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsConstraintViolation reports a CHECK, NOT NULL or length violation.
func IsConstraintViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgCheckViolation || code == pgNotNullViolation || code == pgStringTooLong
	}
	if ext, ok := sqliteExtendedCode(err); ok {
		return ext == sqlite3.ErrConstraintCheck || ext == sqlite3.ErrConstraintNotNull
	}
	return false
}

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func sqliteExtendedCode(err error) (sqlite3.ErrNoExtended, bool) {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode, true
	}
	return 0, false
}
