package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis under a fixed key prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore wraps a Redis client.  A nil client yields a nil store;
// callers fall back to the in-memory store in that case.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	if rdb == nil {
		return nil
	}
	return &RedisStore{rdb: rdb, prefix: "sess:"}
}

func (s *RedisStore) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, s.prefix+id, data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) ([]byte, error) {
	bs, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.prefix+id).Err()
}

// MemoryStore keeps sessions in process memory.  It backs tests and the
// degraded single-instance mode when Redis is unavailable at startup.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memSession
}

type memSession struct {
	data []byte
	exp  time.Time
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memSession)}
}

func (s *MemoryStore) Save(_ context.Context, id string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memSession{data: data, exp: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || time.Now().After(e.exp) {
		delete(s.entries, id)
		return nil, ErrNoSession
	}
	return e.data, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
