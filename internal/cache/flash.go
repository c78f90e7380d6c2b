// Package cache holds the one-shot messages carried across the page's
// post/redirect/get cycle. A message is readable exactly once.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const flashKeyPrefix = "inventory:flash:"

// Flash is the outcome of one form submission.
type Flash struct {
	Notice string `json:"notice,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Flashes stores messages between a redirect and the following page load.
type Flashes interface {
	// Put returns the id the redirect carries.
	Put(ctx context.Context, f Flash) (string, error)
	// Take removes the message; ok=false when it is unknown or expired.
	Take(ctx context.Context, id string) (f Flash, ok bool, err error)
}

// NewRedisClient creates and validates a go-redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

type RedisFlashes struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisFlashes(rdb *redis.Client, ttl time.Duration) *RedisFlashes {
	return &RedisFlashes{rdb: rdb, ttl: ttl}
}

func (s *RedisFlashes) Put(ctx context.Context, f Flash) (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, flashKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisFlashes) Take(ctx context.Context, id string) (Flash, bool, error) {
	raw, err := s.rdb.GetDel(ctx, flashKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flash{}, false, nil
	}
	if err != nil {
		return Flash{}, false, err
	}

	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return Flash{}, false, err
	}
	return f, true, nil
}

// MemoryFlashes is the single-process fallback when no redis is configured.
type MemoryFlashes struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryFlash
}

type memoryFlash struct {
	flash     Flash
	expiresAt time.Time
}

func NewMemoryFlashes(ttl time.Duration) *MemoryFlashes {
	return &MemoryFlashes{ttl: ttl, now: time.Now, entries: map[string]memoryFlash{}}
}

func (s *MemoryFlashes) Put(_ context.Context, f Flash) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}

	id := uuid.NewString()
	s.entries[id] = memoryFlash{flash: f, expiresAt: now.Add(s.ttl)}
	return id, nil
}

func (s *MemoryFlashes) Take(_ context.Context, id string) (Flash, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Flash{}, false, nil
	}
	delete(s.entries, id)
	if s.now().After(e.expiresAt) {
		return Flash{}, false, nil
	}
	return e.flash, true, nil
}
