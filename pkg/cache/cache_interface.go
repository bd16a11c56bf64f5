package cache

import (
	"context"
	"time"
)

// Cache is the contract repositories cache through.
// Implementations: Redis, Noop.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false on a miss, dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}

// Noop never stores anything. Used when Redis is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                       { return nil }
func (Noop) Ping(context.Context) error                                    { return nil }
