package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	sqlDB, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	db := NewDB(sqlDB, DialectSQLite)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"postgres": DialectPostgres, "PostgreSQL": DialectPostgres, "pgx": DialectPostgres,
		"sqlite": DialectSQLite, " sqlite3 ": DialectSQLite,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDialect("mysql")
	assert.Error(t, err)
}

func TestDialect_Placeholders(t *testing.T) {
	pg := NewDB(nil, DialectPostgres)
	query, _, err := pg.Builder().Select("1").Where("x = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "$1")

	lite := openMemory(t)
	query, _, err = lite.Builder().Select("1").Where("x = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "x = ?")
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on&_busy_timeout=5000", sqliteDSN(":memory:"))
	assert.Equal(t, "file::memory:?_foreign_keys=on&_busy_timeout=5000", sqliteDSN(""))
	assert.Equal(t, "file:library.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("file:library.db"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"Author"`, Quote(TableAuthor))
	assert.Equal(t, []string{`"Id"`, `"AuthorId"`}, QuoteAll("Id", "AuthorId"))
	assert.Equal(t, `ab."BookId"`, Qualify("ab", "BookId"))
}

func TestEnsureSchema_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('Author', 'Book', 'AuthorBook') ORDER BY name`))
	assert.Equal(t, []string{"Author", "AuthorBook", "Book"}, tables)

	var index int
	require.NoError(t, db.GetContext(ctx, &index,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'IX_AuthorBook_BookId'`))
	assert.Equal(t, 1, index)
}

func TestSchema_ErrorClassification(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, EnsureSchema(ctx, db))

	_, err := db.ExecContext(ctx, `INSERT INTO "AuthorBook" ("AuthorId", "BookId") VALUES (1, 1)`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO "Author" ("Id", "FirstName", "LastName") VALUES (1, 'a', 'b')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO "Author" ("Id", "FirstName", "LastName") VALUES (1, 'c', 'd')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO "Book" ("Title", "Description") VALUES ('  ', 'd')`)
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))

	assert.False(t, IsForeignKeyViolation(nil))
}

func TestServerVersion(t *testing.T) {
	db := openMemory(t)

	version, err := db.CheckServerVersion(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, compareVersions(version, minSQLiteVersion), 0)
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, 0, compareVersions("3.35.0", "3.35"))
	assert.Equal(t, -1, compareVersions("3.34.1", "3.35.0"))
	assert.Equal(t, 1, compareVersions("3.45.1", "3.35.0"))
	assert.Equal(t, 1, compareVersions("10.0", "9.6.24"))
}

func TestContainsFold_EscapesWildcards(t *testing.T) {
	sql, args, err := DialectSQLite.ContainsFold(`"Title"`, `50%_off\`).ToSql()
	require.NoError(t, err)
	assert.Equal(t, `"Title" LIKE ? ESCAPE '\'`, sql)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)

	sql, _, err = DialectPostgres.ContainsFold(`"Title"`, "x").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ILIKE")
}

func TestResyncIdentity(t *testing.T) {
	assert.Empty(t, DialectSQLite.resyncIdentitySQL(TableAuthor, "Id"))
	assert.Equal(t,
		`SELECT setval(pg_get_serial_sequence('"Author"', 'Id'), (SELECT COALESCE(MAX("Id"), 1) FROM "Author"))`,
		DialectPostgres.resyncIdentitySQL(TableAuthor, "Id"),
	)

	db := openMemory(t)
	assert.NoError(t, ResyncIdentity(context.Background(), DialectSQLite, db, TableAuthor, "Id"))
}

func TestPoolStats(t *testing.T) {
	db := openMemory(t)

	stats := db.Stats()
	assert.Equal(t, 1, stats.MaxOpenConns)
	assert.Zero(t, stats.AvgWait())
	assert.Zero(t, PoolStats{}.Utilization())
	assert.InDelta(t, 50.0, PoolStats{MaxOpenConns: 4, InUse: 2}.Utilization(), 0.001)

	require.NoError(t, db.HealthCheck(context.Background()))
}

type fakePgxStat struct {
	max, total, acquired, idle int32
	empty                      int64
	wait                       time.Duration
}

func (f fakePgxStat) MaxConns() int32                { return f.max }
func (f fakePgxStat) TotalConns() int32              { return f.total }
func (f fakePgxStat) AcquiredConns() int32           { return f.acquired }
func (f fakePgxStat) IdleConns() int32               { return f.idle }
func (f fakePgxStat) EmptyAcquireCount() int64       { return f.empty }
func (f fakePgxStat) AcquireDuration() time.Duration { return f.wait }

func TestPoolStats_FromPgxPool(t *testing.T) {
	stats := statsFromPgx(fakePgxStat{max: 10, total: 10, acquired: 9, idle: 1, empty: 4, wait: 2 * time.Second})

	assert.Equal(t, 10, stats.MaxOpenConns)
	assert.Equal(t, 9, stats.InUse)
	assert.Equal(t, 1, stats.Idle)
	assert.InDelta(t, 90.0, stats.Utilization(), 0.001)
	assert.Equal(t, 500*time.Millisecond, stats.AvgWait())
}

func TestBuildConnectionString(t *testing.T) {
	pg := NewPostgresDB(&DBConfig{
		Host: "db", Port: 5432, Username: "lib", Password: "p@ss word", DBName: "catalog", SSLMode: "disable",
	})
	assert.Equal(t, "postgresql://lib:p%40ss%20word@db:5432/catalog?sslmode=disable", pg.buildConnectionString())
}
