package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// DB is the persistence handle shared by all repositories.
// The underlying pool is safe for concurrent use; transactions are not and must
// stay inside the request that opened them.
type DB struct {
	*sqlx.DB
	Dialect Dialect

	pg *PostgresDB
}

// NewDB wraps an already opened *sql.DB.
func NewDB(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{
		DB:      sqlx.NewDb(sqlDB, dialect.DriverName()),
		Dialect: dialect,
	}
}

// Open connects using cfg.Dialect and verifies the server can host the schema.
func Open(ctx context.Context, cfg *DBConfig) (*DB, error) {
	var db *DB

	switch cfg.Dialect {
	case DialectPostgres:
		pg := NewPostgresDB(cfg)
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		db = NewDB(stdlib.OpenDBFromPool(pg.Pool), DialectPostgres)
		db.pg = pg
	case DialectSQLite:
		sqlDB, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		db = NewDB(sqlDB, DialectSQLite)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Dialect)
	}

	version, err := db.CheckServerVersion(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Info().
		Str("dialect", string(db.Dialect)).
		Str("server_version", version).
		Msg("[DATABASE] connected")

	return db, nil
}

// Builder returns a squirrel builder using the dialect's placeholders.
func (db *DB) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.Dialect.Placeholder())
}

// HealthCheck pings the database; postgres also reports pool statistics.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.pg != nil {
		return db.pg.HealthCheck(ctx)
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	err := db.DB.Close()
	if db.pg != nil {
		db.pg.Close()
	}
	return err
}
