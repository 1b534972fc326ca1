package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshStore tracks the jtis of outstanding refresh tokens. A refresh
// token whose jti is absent (expired or never issued) is rejected.
type RefreshStore interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
}

// RedisStore keeps refresh-token ids in Redis with a matching TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(jti), "1", ttl).Err()
}

func (s *RedisStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("refresh store check: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) key(jti string) string {
	return "refresh:" + jti
}

// MemoryStore is an in-process RefreshStore used when no Redis address is
// configured and in tests. Tokens are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]time.Time)}
}

func (s *MemoryStore) Save(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.items[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.items, jti)
		return false, nil
	}
	return true, nil
}
