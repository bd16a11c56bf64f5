package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	// identity columns arrived in PostgreSQL 10
	minPostgresVersionNum = 100000
	// RETURNING arrived in SQLite 3.35
	minSQLiteVersion = "3.35.0"
)

// ServerVersion reports the human readable server version.
func (db *DB) ServerVersion(ctx context.Context) (string, error) {
	var version string
	query := `SELECT sqlite_version()`
	if db.Dialect == DialectPostgres {
		query = `SHOW server_version`
	}
	if err := db.QueryRowxContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to detect server version: %w", err)
	}
	return version, nil
}

// CheckServerVersion detects the server version and rejects servers that
// cannot host the schema.
func (db *DB) CheckServerVersion(ctx context.Context) (string, error) {
	version, err := db.ServerVersion(ctx)
	if err != nil {
		return "", err
	}

	switch db.Dialect {
	case DialectPostgres:
		var numStr string
		if err := db.QueryRowxContext(ctx, `SHOW server_version_num`).Scan(&numStr); err != nil {
			return "", fmt.Errorf("failed to detect server version: %w", err)
		}
		num, err := strconv.Atoi(strings.TrimSpace(numStr))
		if err != nil {
			return "", fmt.Errorf("unexpected server_version_num %q: %w", numStr, err)
		}
		if num < minPostgresVersionNum {
			return "", fmt.Errorf("postgres %s is not supported, need 10 or newer", version)
		}
	case DialectSQLite:
		if compareVersions(version, minSQLiteVersion) < 0 {
			return "", fmt.Errorf("sqlite %s is not supported, need %s or newer", version, minSQLiteVersion)
		}
	}

	return version, nil
}

// compareVersions compares dotted numeric versions; missing parts count as 0.
func compareVersions(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for i := 0; i < len(pa) || i < len(pb); i++ {
		var x, y int
		if i < len(pa) {
			x, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			y, _ = strconv.Atoi(pb[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
