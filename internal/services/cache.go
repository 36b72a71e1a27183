package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/standapp/standapp-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL applies when no explicit TTL is given.
	DefaultCacheTTL = 8 * time.Hour
	// MinCacheTTL / MaxCacheTTL clamp custom TTLs. Generated plans are
	// stable for a given subject, so hours-long caching is fine.
	MinCacheTTL = 6 * time.Hour
	MaxCacheTTL = 12 * time.Hour
)

// CacheService caches generated content (plans) in Redis so repeated
// requests for the same subject skip the provider round-trip.
type CacheService struct{}

// Get retrieves a value from cache. A miss is not an error.
func (c *CacheService) Get(key string, dest interface{}) (bool, error) {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with the default TTL.
func (c *CacheService) Set(key string, value interface{}) error {
	return c.SetWithTTL(key, value, DefaultCacheTTL)
}

// SetWithTTL stores a value in cache with a custom TTL, clamped to 6-12h.
func (c *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(context.Background(), CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a value from cache.
func (c *CacheService) Delete(key string) error {
	return database.RedisClient.Del(context.Background(), CacheKeyPrefix+key).Err()
}

// CacheKey builds a cache key for a resource/identifier pair.
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

// Global cache service instance
var Cache = &CacheService{}
