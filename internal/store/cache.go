package store

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/iliyamo/cinema-admin-api/internal/config"
)

// FetchFunc loads a value from the content store on a cache miss.  The
// returned bytes are the canonical JSON encoding of the query result.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache is the query cache.  Reads for the same key made while a fetch
// is in flight are coalesced onto a single remote call; every caller
// receives the same result.  A nil backend disables storage but keeps
// the coalescing guarantee.
type Cache struct {
	cfg   config.QueryCacheConfig
	be    Backend
	group singleflight.Group
}

// New builds a Cache.  Passing a nil Backend (or Enabled=false) yields
// a pass-through cache that still deduplicates concurrent reads.
func New(cfg config.QueryCacheConfig, be Backend) *Cache {
	if !cfg.Enabled {
		be = nil
	}
	return &Cache{cfg: cfg, be: be}
}

func (c *Cache) entryKey(k Key) string { return c.cfg.Prefix + ":" + k.String() }
func (c *Cache) setKey(entity string) string { return c.cfg.Prefix + ":keys:" + entity }

// Fetch returns the cached value for key if present and not stale,
// otherwise runs miss exactly once (coalescing concurrent callers),
// stores the result under the key and registers the key in its entity's
// tracking set.
func (c *Cache) Fetch(ctx context.Context, key Key, miss FetchFunc) ([]byte, error) {
	if c.be != nil {
		if bs, err := c.be.Get(ctx, c.entryKey(key)); err == nil {
			return bs, nil
		}
		// Misses and backend errors both fall through to the remote
		// fetch; a broken backend must not take reads down.
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		// The flight is shared by every coalesced caller and its result
		// is cached for later readers, so it must outlive the request
		// that happened to start it.
		ctx := context.WithoutCancel(ctx)
		// Re-check under the flight: an earlier caller may have already
		// populated the entry.
		if c.be != nil {
			if bs, err := c.be.Get(ctx, c.entryKey(key)); err == nil {
				return bs, nil
			}
		}
		bs, err := miss(ctx)
		if err != nil {
			return nil, err
		}
		if c.be != nil {
			if err := c.be.Set(ctx, c.entryKey(key), bs, c.cfg.TTL); err == nil {
				_ = c.be.Track(ctx, c.setKey(key.Entity), c.entryKey(key), c.cfg.TTL)
			}
		}
		return bs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate drops every live key belonging to the entity sets mapped
// to the mutation kind, including all tracked page keys and count keys.
// A read issued after Invalidate returns refetches from the store.
func (c *Cache) Invalidate(ctx context.Context, m Mutation) error {
	if c.be == nil {
		return nil
	}
	var firstErr error
	for _, entity := range EntitiesFor(m) {
		set := c.setKey(entity)
		keys, err := c.be.Tracked(ctx, set)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := c.be.Del(ctx, append(keys, set)...); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
