package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

// Table names are fixed; nothing is pluralised.
const (
	TableAuthor     = "Author"
	TableBook       = "Book"
	TableAuthorBook = "AuthorBook"
)

// Quote quotes a mixed-case identifier. Postgres and SQLite share the syntax.
func Quote(ident string) string {
	return pq.QuoteIdentifier(ident)
}

func QuoteAll(idents ...string) []string {
	return lo.Map(idents, func(ident string, _ int) string {
		return Quote(ident)
	})
}

// Qualify quotes a column and prefixes it with a table alias.
func Qualify(alias, column string) string {
	return alias + "." + Quote(column)
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS "Author" (
		"Id"        INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"FirstName" VARCHAR(55) NOT NULL CHECK (length(btrim("FirstName")) > 0),
		"LastName"  VARCHAR(55) NOT NULL CHECK (length(btrim("LastName")) > 0),
		"DOB"       TEXT NOT NULL DEFAULT '',
		"ImageUrl"  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS "Book" (
		"Id"          INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		"Title"       VARCHAR(55) NOT NULL CHECK (length(btrim("Title")) > 0),
		"Description" VARCHAR(55) NOT NULL CHECK (length(btrim("Description")) > 0),
		"Published"   VARCHAR(25),
		"ImageURL"    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS "AuthorBook" (
		"AuthorId" INTEGER NOT NULL REFERENCES "Author" ("Id") ON DELETE CASCADE,
		"BookId"   INTEGER NOT NULL REFERENCES "Book" ("Id") ON DELETE CASCADE,
		PRIMARY KEY ("AuthorId", "BookId")
	)`,
	`CREATE INDEX IF NOT EXISTS "IX_AuthorBook_BookId" ON "AuthorBook" ("BookId")`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS "Author" (
		"Id"        INTEGER PRIMARY KEY AUTOINCREMENT,
		"FirstName" TEXT NOT NULL CHECK (length(trim("FirstName")) BETWEEN 1 AND 55),
		"LastName"  TEXT NOT NULL CHECK (length(trim("LastName")) BETWEEN 1 AND 55),
		"DOB"       TEXT NOT NULL DEFAULT '',
		"ImageUrl"  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS "Book" (
		"Id"          INTEGER PRIMARY KEY AUTOINCREMENT,
		"Title"       TEXT NOT NULL CHECK (length(trim("Title")) BETWEEN 1 AND 55),
		"Description" TEXT NOT NULL CHECK (length(trim("Description")) BETWEEN 1 AND 55),
		"Published"   TEXT CHECK ("Published" IS NULL OR length("Published") <= 25),
		"ImageURL"    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS "AuthorBook" (
		"AuthorId" INTEGER NOT NULL REFERENCES "Author" ("Id") ON DELETE CASCADE,
		"BookId"   INTEGER NOT NULL REFERENCES "Book" ("Id") ON DELETE CASCADE,
		PRIMARY KEY ("AuthorId", "BookId")
	)`,
	`CREATE INDEX IF NOT EXISTS "IX_AuthorBook_BookId" ON "AuthorBook" ("BookId")`,
}

// EnsureSchema creates the catalog tables when they are missing.
// It never alters existing tables.
func EnsureSchema(ctx context.Context, db *DB) error {
	statements := sqliteSchema
	if db.Dialect == DialectPostgres {
		statements = postgresSchema
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// ResyncIdentity advances the identity of table.column past its current maximum.
func ResyncIdentity(ctx context.Context, dialect Dialect, exec Execer, table, column string) error {
	stmt := dialect.resyncIdentitySQL(table, column)
	if stmt == "" {
		return nil
	}
	if _, err := exec.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to resync identity of %s.%s: %w", table, column, err)
	}
	return nil
}
