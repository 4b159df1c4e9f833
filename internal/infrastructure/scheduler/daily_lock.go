package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DailyLock coordinates the daily sweep across instances. Acquire returns
// true for exactly one caller per date.
type DailyLock interface {
	Acquire(ctx context.Context, date string) (bool, error)
}

// NoOpDailyLock always grants the lock. Suitable for single-instance
// deployments and tests.
type NoOpDailyLock struct{}

// Acquire always returns true
func (NoOpDailyLock) Acquire(ctx context.Context, date string) (bool, error) {
	return true, nil
}

// RedisDailyLock implements DailyLock with a Redis SETNX per date. The TTL
// keeps a crashed holder from blocking the next day's run; the key embeds
// the date, so a re-acquired lock on the same day still reports false.
type RedisDailyLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisDailyLock creates a Redis-backed daily lock
func NewRedisDailyLock(client *redis.Client, ttl time.Duration) *RedisDailyLock {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisDailyLock{
		client:    client,
		keyPrefix: "sweep:lock:",
		ttl:       ttl,
	}
}

// Acquire attempts to take the lock for the given date
func (l *RedisDailyLock) Acquire(ctx context.Context, date string) (bool, error) {
	return l.client.SetNX(ctx, l.keyPrefix+date, "1", l.ttl).Result()
}
