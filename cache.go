package proj

import (
	"sync"
	"sync/atomic"
)

/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */
/* Process-wide projection cache.                                                                 */
/*                                                                                                */
/* Keyed by the verbatim definition string; values are shared immutable ProjectionParams.         */
/* Readers never block writers. On reaching capacity the cache is cleared wholesale rather than   */
/* evicting per entry: parsing is cheap relative to tracking recency.                             */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -  */

const defaultCacheCapacity = 1000

type projectionCache struct {
	m        sync.Map
	size     int64
	capacity int64
}

func newProjectionCache(capacity int) *projectionCache {
	return &projectionCache{capacity: int64(capacity)}
}

func (c *projectionCache) get(key string) (*ProjectionParams, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*ProjectionParams), true
}

func (c *projectionCache) put(key string, ps *ProjectionParams) {
	if _, loaded := c.m.LoadOrStore(key, ps); loaded {
		return
	}
	if atomic.AddInt64(&c.size, 1) >= c.capacity {
		c.clear()
	}
}

func (c *projectionCache) clear() {
	c.m.Range(func(k, _ interface{}) bool {
		c.m.Delete(k)
		return true
	})
	atomic.StoreInt64(&c.size, 0)
}

var defaultCache = newProjectionCache(defaultCacheCapacity)

// ClearCache empties the process-wide projection cache.
func ClearCache() {
	defaultCache.clear()
}
