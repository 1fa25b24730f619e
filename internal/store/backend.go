// Package store implements the query cache sitting between the entity
// repositories and the content store.  Cached values are raw JSON blobs
// keyed by semantic query identity (entity type plus optional page
// number), served until a fixed staleness window elapses and
// invalidated explicitly after mutations.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Backend.Get when no live entry exists for a key.
var ErrMiss = errors.New("cache miss")

// Backend is the persistence adapter behind the cache.  Production uses
// Redis; tests inject the in-memory implementation.  Track/Tracked
// maintain the set of live keys per entity so invalidation can delete
// the exact key set instead of guessing at prefixes.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Track(ctx context.Context, set, key string, ttl time.Duration) error
	Tracked(ctx context.Context, set string) ([]string, error)
}

// RedisBackend adapts a Redis client to the Backend interface.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend wraps an existing Redis client.  A nil client yields
// a nil backend, which disables caching upstream.
func NewRedisBackend(rdb *redis.Client) *RedisBackend {
	if rdb == nil {
		return nil
	}
	return &RedisBackend{rdb: rdb}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	bs, err := b.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return b.rdb.SetEx(ctx, key, val, ttl).Err()
}

func (b *RedisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Del(ctx, keys...).Err()
}

func (b *RedisBackend) Track(ctx context.Context, set, key string, ttl time.Duration) error {
	if err := b.rdb.SAdd(ctx, set, key).Err(); err != nil {
		return err
	}
	// Keep the tracking set alive longer than its members so a set never
	// expires while still referencing live keys.
	return b.rdb.Expire(ctx, set, 2*ttl).Err()
}

func (b *RedisBackend) Tracked(ctx context.Context, set string) ([]string, error) {
	return b.rdb.SMembers(ctx, set).Result()
}

// MemoryBackend is a process-local Backend used in tests and as the
// degraded mode when Redis is unreachable at startup.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memEntry
	sets    map[string]map[string]struct{}
}

type memEntry struct {
	val []byte
	exp time.Time
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memEntry),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[key]
	if !ok || time.Now().After(e.exp) {
		delete(b.entries, key)
		return nil, ErrMiss
	}
	return e.val, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = memEntry{val: val, exp: time.Now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Del(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.entries, k)
		delete(b.sets, k)
	}
	return nil
}

func (b *MemoryBackend) Track(_ context.Context, set, key string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sets[set] == nil {
		b.sets[set] = make(map[string]struct{})
	}
	b.sets[set][key] = struct{}{}
	return nil
}

func (b *MemoryBackend) Tracked(_ context.Context, set string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.sets[set]))
	for k := range b.sets[set] {
		out = append(out, k)
	}
	return out, nil
}
