package fakeweb

import (
	"sync"
	"time"

	"github.com/Yiling-J/theine-go"
)

// Cache is the application cache reachable from a Context.
type Cache interface {
	// Get returns the cached value for key, if present and not expired.
	Get(key string) (any, bool)
	// Set stores value under key. A ttl of zero or less means the entry does not expire.
	Set(key string, value any, ttl time.Duration) bool
	Remove(key string)
	Close()
}

// DefaultCacheEntries is the capacity of the memory cache a Context creates for itself.
const DefaultCacheEntries = 1024

type memoryCache struct {
	cache  *theine.Cache[string, any]
	closed sync.Once
}

// NewMemoryCache creates an in-process Cache holding at most maxEntries entries.
func NewMemoryCache(maxEntries int64) (Cache, error) {
	built, err := theine.NewBuilder[string, any](maxEntries).Build()
	if err != nil {
		return nil, err
	}
	return &memoryCache{cache: built}, nil
}

func (m *memoryCache) Get(key string) (any, bool) {
	return m.cache.Get(key)
}

func (m *memoryCache) Set(key string, value any, ttl time.Duration) bool {
	if ttl <= 0 {
		return m.cache.Set(key, value, 1)
	}
	return m.cache.SetWithTTL(key, value, 1, ttl)
}

func (m *memoryCache) Remove(key string) {
	m.cache.Delete(key)
}

func (m *memoryCache) Close() {
	m.closed.Do(m.cache.Close)
}
