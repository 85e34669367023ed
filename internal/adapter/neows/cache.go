package neows

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
	"golang.org/x/sync/singleflight"
)

// flightTimeout bounds a shared upstream call, which runs detached from the
// context of the caller that started it.
const flightTimeout = 30 * time.Second

// CachedCatalog wraps a Catalog with in-memory LRU caches. Concurrent misses
// for the same key share one upstream call.
type CachedCatalog struct {
	inner   domain.Catalog
	lookups *lruCache[domain.NearEarthObject]
	feeds   *lruCache[[]domain.NearEarthObject]
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewCachedCatalog creates a cache decorator around a catalog.
func NewCachedCatalog(inner domain.Catalog, maxEntries int, metrics *observability.Metrics) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		lookups: newLRUCache[domain.NearEarthObject](maxEntries),
		feeds:   newLRUCache[[]domain.NearEarthObject](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedCatalog) LookupNEO(ctx context.Context, id string) (domain.NearEarthObject, error) {
	key := "neo:" + id
	if neo, ok := c.lookups.get(key); ok {
		c.metrics.CatalogCache.WithLabelValues("lookup", "hit").Inc()
		return neo, nil
	}
	c.metrics.CatalogCache.WithLabelValues("lookup", "miss").Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		neo, err := c.inner.LookupNEO(flightCtx, id)
		if err != nil {
			return domain.NearEarthObject{}, err
		}
		// Only cache real objects so a transient empty answer can be retried.
		if neo.ID != "" {
			c.lookups.put(key, neo)
		}
		return neo, nil
	})
	return await[domain.NearEarthObject](ctx, ch)
}

func (c *CachedCatalog) Feed(ctx context.Context, start, end time.Time) ([]domain.NearEarthObject, error) {
	key := fmt.Sprintf("feed:%s|%s", start.Format(dateLayout), end.Format(dateLayout))
	if neos, ok := c.feeds.get(key); ok {
		c.metrics.CatalogCache.WithLabelValues("feed", "hit").Inc()
		return neos, nil
	}
	c.metrics.CatalogCache.WithLabelValues("feed", "miss").Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		neos, err := c.inner.Feed(flightCtx, start, end)
		if err != nil {
			return []domain.NearEarthObject(nil), err
		}
		if len(neos) > 0 {
			c.feeds.put(key, neos)
		}
		return neos, nil
	})
	return await[[]domain.NearEarthObject](ctx, ch)
}

// await waits for a shared upstream call. A caller whose context ends stops
// waiting; the call itself keeps running for the other callers.
func await[T any](ctx context.Context, ch <-chan singleflight.Result) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// lruCache is a small thread-safe LRU cache keyed by string.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

func (c *lruCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache[V]) pushFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictOldest() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
