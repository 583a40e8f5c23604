// Package session externalizes conversation and booking-selection state so
// the stateless chat handler can resume a session: a Redis KV cache for
// booking sessions, a Redis-fronted Mongo store for conversation state, and a
// shared retry/backoff + fallback policy that prefers availability over
// consistency. The booking conversation never hard-fails just because the
// persistence backend is degraded.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound marks an absent key; it is a normal outcome, not a persistence
// failure, and is never retried.
var ErrNotFound = errors.New("key not found")

// PersistenceError wraps a store failure after retries were exhausted. It is
// always absorbed inside this package (logged, fallback applied) and never
// surfaced to the user-visible flow.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// KV is the narrow key/value surface the coordinator needs. Redis implements
// it in production; tests swap in in-memory fakes.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisKV struct {
	client *redis.Client
}

// NewRedisKV wraps a Redis client in the KV interface.
func NewRedisKV(client *redis.Client) KV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Retry policy for every persistence call: bounded attempts with exponential
// backoff, aborted early by context cancellation or a not-found result.
const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
)

func withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	wait := retryBaseWait
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &PersistenceError{Op: op, Err: ctx.Err()}
			case <-time.After(wait):
			}
			wait *= 2
		}
		if err = fn(); err == nil || errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return &PersistenceError{Op: op, Err: err}
}
