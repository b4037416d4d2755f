package pathfinding

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"isogrid/core"
	"isogrid/logging"
)

// PathCacheKey represents a unique key for caching paths
type PathCacheKey struct {
	From, To core.Tile
}

// PathCache stores previously computed routes for reuse.
// Stored slices are shared between callers and must not be modified.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey][]core.Tile
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size.
// A size of zero or less means unbounded.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey][]core.Tile),
		maxSize: maxSize,
	}
}

// Get retrieves a route from the cache if it exists
func (pc *PathCache) Get(start, end core.Tile) ([]core.Tile, bool) {
	key := PathCacheKey{From: start, To: end}

	pc.mu.RLock()
	tiles, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}

	return tiles, found
}

// Put stores a route in the cache
func (pc *PathCache) Put(start, end core.Tile, tiles []core.Tile) {
	key := PathCacheKey{From: start, To: end}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.cache[key]; !exists && pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
		// Simple eviction: remove the first entry found
		for k := range pc.cache {
			delete(pc.cache, k)
			atomic.AddInt64(&pc.evictions, 1)
			break
		}
	}

	pc.cache[key] = tiles
}

// Clear removes all entries from the cache
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey][]core.Tile)
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))

	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// CachedPathFinder wraps a PathFinder with caching functionality.
// The wrapped finder must be deterministic.
type CachedPathFinder struct {
	finder PathFinder
	cache  *PathCache
}

// NewCachedPathFinder creates a new cached path finder
func NewCachedPathFinder(finder PathFinder, cacheSize int) *CachedPathFinder {
	return &CachedPathFinder{
		finder: finder,
		cache:  NewPathCache(cacheSize),
	}
}

// FindPath finds a route, using the cache when possible. The returned slice is owned
// by the caller.
func (cpf *CachedPathFinder) FindPath(start, end core.Tile) ([]core.Tile, error) {
	if tiles, found := cpf.cache.Get(start, end); found {
		return slices.Clone(tiles), nil
	}

	tiles, err := cpf.finder.FindPath(start, end)
	if err != nil {
		return nil, err
	}
	logging.Logger().Debug("route computed", "from", start, "to", end, "tiles", len(tiles))

	cpf.cache.Put(start, end, slices.Clone(tiles))
	return tiles, nil
}

// ClearCache clears the path cache
func (cpf *CachedPathFinder) ClearCache() {
	cpf.cache.Clear()
}

// CacheStats returns the cache statistics
func (cpf *CachedPathFinder) CacheStats() string {
	return cpf.cache.String()
}

// Cache exposes the underlying cache.
func (cpf *CachedPathFinder) Cache() *PathCache {
	return cpf.cache
}
