package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// The source is a static reporting snapshot, so entries can live long.
	// TABLE_CACHE_TTL_MINUTES overrides the default expiration.
	defaultTableCacheTTL = 6 * time.Hour
	tableCleanupInterval = 12 * time.Hour
)

// NewTableCache builds the memoization cache for loaded relations.
func NewTableCache() *cache.Cache {
	ttl := defaultTableCacheTTL
	if minutes := GetEnvAsInt("TABLE_CACHE_TTL_MINUTES", 0); minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}
	return cache.New(ttl, tableCleanupInterval)
}

// GetCacheKey joins a prefix and parameters into a cache key.
func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
