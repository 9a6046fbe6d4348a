// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a sharded LRU cache of compiled programs.
//
// One material source compiles to many variants, and backends re-request
// identical (name, variant) pairs whenever pipelines are rebuilt. Caching
// the CompiledProgram skips the WGSL front end on those rebuilds.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/shaderprog/backend"
)

// Default configuration constants.
const (
	// shardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	shardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	// shardMask is used for fast shard selection (shardCount - 1).
	shardMask = shardCount - 1
)

// Key identifies one compiled program: the material name plus the variant
// permutation key.
type Key struct {
	Name    string
	Variant uint8
}

// hash computes the FNV-1a hash of the key for shard selection.
func (k Key) hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.Name)) // fnv.Write never returns an error
	_, _ = h.Write([]byte{k.Variant})
	return h.Sum64()
}

// ProgramCache is a thread-safe, sharded LRU cache of compiled programs.
//
// Features:
//   - 16 shards for reduced lock contention
//   - LRU eviction with configurable capacity per shard
//   - Atomic statistics for monitoring
//   - Zero allocations on cache hit
type ProgramCache struct {
	shards   [shardCount]*cacheShard
	capacity int // Per-shard capacity

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// cacheShard is a single shard of the cache.
// Each shard has its own mutex for reduced contention.
type cacheShard struct {
	mu      sync.RWMutex
	entries map[Key]*cacheEntry
	lru     *lruList
}

// cacheEntry holds a cached program with its LRU node.
type cacheEntry struct {
	program *backend.CompiledProgram
	node    *lruNode
}

// New creates a program cache with the specified capacity per shard.
// Total capacity is approximately capacity * 16.
// If capacity <= 0, DefaultCapacity is used.
func New(capacity int) *ProgramCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &ProgramCache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries: make(map[Key]*cacheEntry),
			lru:     newLRUList(),
		}
	}
	return c
}

// getShard returns the shard for a given key.
// Uses bitwise AND for fast modulo (only works with power-of-2 shard count).
func (c *ProgramCache) getShard(key Key) *cacheShard {
	return c.shards[key.hash()&shardMask]
}

// Get retrieves a cached program by key.
// Returns (program, true) if found, (nil, false) otherwise.
// On cache hit, the entry is moved to the front of the LRU list.
func (c *ProgramCache) Get(key Key) (*backend.CompiledProgram, bool) {
	shard := c.getShard(key)

	// Fast path: read lock to check existence
	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	// Slow path: write lock for LRU update
	shard.mu.Lock()
	// Re-check after acquiring write lock (entry may have been evicted)
	entry, ok := shard.entries[key]
	if !ok {
		shard.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	shard.lru.MoveToFront(entry.node)
	program := entry.program
	shard.mu.Unlock()

	c.hits.Add(1)
	return program, true
}

// Set stores a compiled program in the cache.
// If the shard exceeds capacity after insertion, oldest entries are evicted.
//
// The program is stored as-is (not copied). Callers should not modify it
// after caching.
func (c *ProgramCache) Set(key Key, program *backend.CompiledProgram) {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		existing.program = program
		shard.lru.MoveToFront(existing.node)
		return
	}

	c.evictLocked(shard)
	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{program: program, node: node}
}

// GetOrCompile returns a cached program or compiles it with the provided
// function. The compile function is called with the shard lock held to
// prevent duplicate compilation of the same key; keep it to one program.
func (c *ProgramCache) GetOrCompile(key Key, compile func() (*backend.CompiledProgram, error)) (*backend.CompiledProgram, error) {
	if program, ok := c.Get(key); ok {
		return program, nil
	}

	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	// Re-check after acquiring write lock
	if entry, ok := shard.entries[key]; ok {
		shard.lru.MoveToFront(entry.node)
		c.hits.Add(1)
		return entry.program, nil
	}

	program, err := compile()
	if err != nil {
		return nil, err
	}

	c.evictLocked(shard)
	node := shard.lru.PushFront(key)
	shard.entries[key] = &cacheEntry{program: program, node: node}
	return program, nil
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *ProgramCache) Delete(key Key) bool {
	shard := c.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return false
	}
	shard.lru.Remove(entry.node)
	delete(shard.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *ProgramCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[Key]*cacheEntry)
		shard.lru.Clear()
		shard.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *ProgramCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *ProgramCache) Capacity() int {
	return c.capacity
}

// evictLocked evicts oldest entries until the shard is below capacity.
// The shard lock must be held.
func (c *ProgramCache) evictLocked(shard *cacheShard) {
	for shard.lru.Len() >= c.capacity {
		oldest, ok := shard.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of cached programs.
	Len int

	// Capacity is the per-shard capacity.
	Capacity int

	// Hits is the number of cache hits.
	Hits uint64

	// Misses is the number of cache misses.
	Misses uint64

	// HitRate is Hits / (Hits + Misses), or 0 with no lookups.
	HitRate float64

	// Evictions is the number of evicted programs.
	Evictions uint64
}

// Stats returns current cache statistics.
// This operation is mostly lock-free (atomic counters).
func (c *ProgramCache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}

// ResetStats resets all statistics counters to zero.
func (c *ProgramCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
