// Package cache stores converted documents keyed by a digest of the
// request that produced them.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/yaklabco/gobbcode/pkg/config"
)

// Cache stores converted output by key.
type Cache interface {
	// Get returns the value stored under key. A miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key until the cache's TTL elapses.
	Set(ctx context.Context, key, value string) error

	// Close releases any connection held by the cache.
	Close() error
}

// Entry is a stored conversion.
type Entry struct {
	Output   string    `json:"output"`
	StoredAt time.Time `json:"stored_at"`
}

// Key derives a cache key from the parts of a request. Parts are
// length-prefixed so ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	hash := sha256.New()
	var size [8]byte
	for _, part := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		hash.Write(size[:])
		hash.Write([]byte(part))
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// New returns a Redis cache when cfg names a Redis URL and an in-memory
// cache otherwise.
func New(cfg config.ServerConfig) (Cache, error) {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	if cfg.RedisURL == "" {
		return NewMemory(ttl, DefaultMaxEntries), nil
	}

	prefix := cfg.CachePrefix
	if prefix == "" {
		prefix = config.DefaultCachePrefix
	}

	redisCache, err := NewRedisFromURL(cfg.RedisURL, prefix, ttl)
	if err != nil {
		return nil, fmt.Errorf("create redis cache: %w", err)
	}
	return redisCache, nil
}
