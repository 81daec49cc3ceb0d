package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/observability"
)

// FetchFunc retrieves the full timemap of one resource from its backend
// provider. The context carries the fetch deadline, not the deadline of
// any individual waiter.
type FetchFunc func(ctx context.Context) (api.TimeMap, error)

// Config holds cache behavior settings.
type Config struct {
	// Enabled turns the cache on. When false, every call degrades to a
	// direct, uncoordinated provider fetch per request.
	Enabled bool

	// Tolerance is how old a cached timemap may be and still serve a
	// GetAll request without a refetch.
	Tolerance time.Duration

	// FetchTimeout bounds a single provider fetch. Zero disables the
	// bound; backends may then block a fetch indefinitely.
	FetchTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Tolerance:    5 * time.Minute,
		FetchTimeout: 60 * time.Second,
	}
}

// entry is the cached state of one resource. Entries are immutable once
// stored; updates replace the pointer under the map lock, so readers may
// use an entry after releasing the lock.
type entry struct {
	timemap   api.TimeMap
	fetchedAt time.Time
}

// Cache coordinates timemap fetches per resource URI. Entries are created
// on first access and kept for the process lifetime; memory is bounded
// only by the set of distinct resources seen (eviction would hook in at
// the entry map).
type Cache struct {
	cfg Config

	mu      sync.RWMutex
	entries map[string]*entry

	group singleflight.Group

	// now is replaceable for tests.
	now func() time.Time
}

// New creates a Cache with the given configuration.
func New(cfg Config) *Cache {
	return &Cache{
		cfg:     cfg,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// GetAll returns the freshest available timemap for uri, fetching when no
// entry exists or the entry is older than the configured tolerance.
func (c *Cache) GetAll(ctx context.Context, uri string, fetch FetchFunc) (api.TimeMap, error) {
	if !c.cfg.Enabled {
		observability.CacheRequestsTotal.WithLabelValues("get_all", "bypass").Inc()
		return c.fetchDirect(ctx, fetch)
	}

	if e := c.lookup(uri); e != nil && c.now().Sub(e.fetchedAt) <= c.cfg.Tolerance {
		observability.CacheRequestsTotal.WithLabelValues("get_all", "hit").Inc()
		return e.timemap, nil
	}

	observability.CacheRequestsTotal.WithLabelValues("get_all", "miss").Inc()
	return c.fetchShared(ctx, uri, fetch)
}

// GetUntil returns a timemap for uri that authoritatively answers "best
// snapshot at or before target". A cached entry fetched at or after target
// already covers every snapshot the answer could involve, so it is served
// without a refetch even when stale with respect to the present moment.
func (c *Cache) GetUntil(ctx context.Context, uri string, target time.Time, fetch FetchFunc) (api.TimeMap, error) {
	if !c.cfg.Enabled {
		observability.CacheRequestsTotal.WithLabelValues("get_until", "bypass").Inc()
		return c.fetchDirect(ctx, fetch)
	}

	if e := c.lookup(uri); e != nil && !e.fetchedAt.Before(target) {
		observability.CacheRequestsTotal.WithLabelValues("get_until", "hit").Inc()
		return e.timemap, nil
	}

	observability.CacheRequestsTotal.WithLabelValues("get_until", "miss").Inc()
	return c.fetchShared(ctx, uri, fetch)
}

// lookup returns the current entry for uri, or nil.
func (c *Cache) lookup(uri string) *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[uri]
}

// store records a successful fetch result for uri.
func (c *Cache) store(uri string, tm api.TimeMap, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[uri] = &entry{timemap: tm, fetchedAt: fetchedAt}
}

// fetchShared collapses concurrent fetches for one resource into a single
// provider call and hands its outcome to every waiter. The fetch runs on a
// context detached from the caller: a waiter that gives up (request
// abandoned, client gone) stops waiting, but the fetch completes and
// populates the cache for everyone else. Errors are delivered to all
// waiters of that fetch and leave the previous entry untouched.
func (c *Cache) fetchShared(ctx context.Context, uri string, fetch FetchFunc) (api.TimeMap, error) {
	ch := c.group.DoChan(uri, func() (any, error) {
		fctx := context.Background()
		if c.cfg.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.cfg.FetchTimeout)
			defer cancel()
		}

		tm, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		c.store(uri, tm, c.now())
		return tm, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			observability.SharedFetchesTotal.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(api.TimeMap), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchDirect is the cache-disabled path: one provider call per request,
// no coordination, no staleness check, still bounded by the fetch timeout.
func (c *Cache) fetchDirect(ctx context.Context, fetch FetchFunc) (api.TimeMap, error) {
	if c.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
		defer cancel()
	}
	return fetch(ctx)
}
