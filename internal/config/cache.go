package config

import (
	"os"
	"time"
)

// QueryCacheConfig defines settings for the entity query cache.  Cached
// query results are keyed by (entity type, page) and served until the
// staleness window elapses.  When Enabled is false the cache layer
// passes every read straight through to the content store.
type QueryCacheConfig struct {
	Enabled bool
	TTL     time.Duration // staleness window for cached query results
	Prefix  string        // key namespace in the shared Redis instance
}

// LoadQueryCacheConfig reads environment variables to build a
// QueryCacheConfig.  The default 10 minute TTL matches how long a
// dashboard view is allowed to show a cached listing before refetching.
func LoadQueryCacheConfig() QueryCacheConfig {
	return QueryCacheConfig{
		Enabled: getenv("QUERY_CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("QUERY_CACHE_TTL", "10m")),
		Prefix:  getenv("QUERY_CACHE_PREFIX", "qc"),
	}
}

// Helper functions shared with redis.go and ratelimit.go.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}
