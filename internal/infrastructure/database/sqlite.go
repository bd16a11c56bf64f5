package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// OpenSQLite opens a file (or ":memory:") database with foreign keys enforced.
// A single connection serialises writers and keeps an in-memory database alive
// across calls.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	const opts = "_foreign_keys=on&_busy_timeout=5000"

	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == ":memory:" {
		return "file::memory:?" + opts
	}
	return "file:" + path + "?" + opts
}
