package shaders

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// CacheStats reports SPIR-V cache activity.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// spirvCache keeps compiled SPIR-V keyed by a hash of the WGSL source, so
// re-initializing an effect does not translate the same program again.
type spirvCache struct {
	mu      sync.Mutex
	entries map[uint64][]uint32

	hits   atomic.Uint64
	misses atomic.Uint64
}

var compiled = newSPIRVCache()

func newSPIRVCache() *spirvCache {
	return &spirvCache{entries: make(map[uint64][]uint32)}
}

// sourceHash computes the FNV-1a hash of a WGSL source.
func sourceHash(src string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src)) // fnv.Write never returns an error
	return h.Sum64()
}

// getOrCreate returns the cached words for src or stores the result of create.
// Failed compilations are not cached.
func (c *spirvCache) getOrCreate(src string, create func() ([]uint32, error)) ([]uint32, error) {
	key := sourceHash(src)

	c.mu.Lock()
	defer c.mu.Unlock()

	if words, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return words, nil
	}
	c.misses.Add(1)

	words, err := create()
	if err != nil {
		return nil, err
	}
	c.entries[key] = words
	return words, nil
}

func (c *spirvCache) stats() CacheStats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return CacheStats{Len: n, Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *spirvCache) clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns the SPIR-V cache counters.
func Stats() CacheStats {
	return compiled.stats()
}

// ClearCache drops every cached SPIR-V module.
func ClearCache() {
	compiled.clear()
}
