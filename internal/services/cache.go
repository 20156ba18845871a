package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// Cache stores rendered public responses keyed by request path.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// NewCache returns a Redis cache when Redis is enabled and reachable, and a
// memory cache otherwise.
func NewCache(cfg *config.Config) Cache {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("[Cache] Redis unavailable, falling back to memory cache: %v", err)
			client.Close()
		} else {
			logger.Infof("[Cache] Redis cache at %s", cfg.Redis.Addr)
			return NewRedisCache(client, cfg.Cache.Prefix)
		}
	}
	return NewMemoryCache()
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
	return nil
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return b, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.prefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Revalidator invalidates cached pages after a mutation.
type Revalidator struct {
	cache Cache
}

func NewRevalidator(cache Cache) *Revalidator {
	return &Revalidator{cache: cache}
}

// RevalidatePath drops every cached entry under each path. The public API
// mirrors page paths under /api, so "/team" also clears "/api/team".
func (r *Revalidator) RevalidatePath(ctx context.Context, paths ...string) {
	if r == nil || r.cache == nil {
		return
	}
	for _, p := range paths {
		for _, key := range cacheKeysFor(p) {
			if err := r.cache.DeletePrefix(ctx, key); err != nil {
				logger.Error().Err(err).Str("path", p).Msg("revalidate failed")
			}
		}
	}
}

func cacheKeysFor(path string) []string {
	switch path {
	case "/":
		return []string{"/api/landing"}
	case "/works":
		return []string{"/api/works"}
	case "/team":
		return []string{"/api/team", "/api/landing"}
	}
	return []string{path}
}
