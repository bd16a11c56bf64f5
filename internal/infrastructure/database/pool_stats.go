package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// PoolStats is a snapshot of the connection pool.
type PoolStats struct {
	MaxOpenConns int           `json:"max_open_conns"`
	OpenConns    int           `json:"open_conns"`
	InUse        int           `json:"in_use"`
	Idle         int           `json:"idle"`
	WaitCount    int64         `json:"wait_count"`
	WaitDuration time.Duration `json:"wait_duration"`
}

// Stats reads the pool counters. Postgres limits and waits live in pgxpool,
// the database/sql bridge on top of it is unbounded, so they are read there.
func (db *DB) Stats() PoolStats {
	if db.pg != nil && db.pg.Pool != nil {
		return statsFromPgx(db.pg.Pool.Stat())
	}

	raw := db.DB.Stats()
	return PoolStats{
		MaxOpenConns: raw.MaxOpenConnections,
		OpenConns:    raw.OpenConnections,
		InUse:        raw.InUse,
		Idle:         raw.Idle,
		WaitCount:    raw.WaitCount,
		WaitDuration: raw.WaitDuration,
	}
}

// pgxStat is the part of *pgxpool.Stat the snapshot needs.
type pgxStat interface {
	MaxConns() int32
	TotalConns() int32
	AcquiredConns() int32
	IdleConns() int32
	EmptyAcquireCount() int64
	AcquireDuration() time.Duration
}

// statsFromPgx counts only acquires that found the pool empty as waits.
// AcquireDuration also includes the near-instant acquires of idle conns.
func statsFromPgx(s pgxStat) PoolStats {
	return PoolStats{
		MaxOpenConns: int(s.MaxConns()),
		OpenConns:    int(s.TotalConns()),
		InUse:        int(s.AcquiredConns()),
		Idle:         int(s.IdleConns()),
		WaitCount:    s.EmptyAcquireCount(),
		WaitDuration: s.AcquireDuration(),
	}
}

// AvgWait is the mean time a caller waited for a connection.
func (s PoolStats) AvgWait() time.Duration {
	if s.WaitCount == 0 {
		return 0
	}
	return s.WaitDuration / time.Duration(s.WaitCount)
}

// Utilization is InUse as a percentage of MaxOpenConns, or 0 when unbounded.
func (s PoolStats) Utilization() float64 {
	if s.MaxOpenConns <= 0 {
		return 0
	}
	return float64(s.InUse) / float64(s.MaxOpenConns) * 100
}

// MonitorPoolHealth logs a warning when the pool runs hot. Blocks until ctx is done.
func (db *DB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := db.Stats()

			if pct := stats.Utilization(); pct > 80 {
				log.Warn().
					Float64("utilization_pct", pct).
					Int("in_use", stats.InUse).
					Int("max", stats.MaxOpenConns).
					Msg("[MONITOR] high pool utilization")
			}

			if avg := stats.AvgWait(); avg > 100*time.Millisecond {
				log.Warn().Dur("avg_wait", avg).Msg("[MONITOR] high connection wait")
			}

		case <-ctx.Done():
			log.Debug().Msg("[MONITOR] stopping pool health monitoring")
			return
		}
	}
}
