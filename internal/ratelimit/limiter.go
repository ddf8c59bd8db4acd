// Package ratelimit applies a fixed-window request limit per client on the
// status API. The limiter state lives in Redis when a Redis backend is
// configured and in process memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type memoryWindow struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps windows in process memory. Counts reset on restart and
// are not shared between replicas.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*memoryWindow
}

// NewMemoryLimiter creates an in-process limiter allowing limit requests per
// window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*memoryWindow),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	w.count++

	remaining := l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    w.count <= l.limit,
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: w.resetAt.Sub(now),
	}, nil
}

// RedisLimiter keeps windows in Redis so the limit holds across replicas.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter allowing limit requests per
// window.
func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := "credstate:ratelimit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("check rate limit: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	retryAfter := ttl.Val()
	if retryAfter < 0 {
		retryAfter = l.window
	}
	return Result{
		Allowed:    count <= l.limit,
		Limit:      l.limit,
		Remaining:  remaining,
		RetryAfter: retryAfter,
	}, nil
}
