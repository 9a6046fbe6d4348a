// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gogpu/shaderprog/backend"
)

func program(name string, variant uint8) *backend.CompiledProgram {
	return &backend.CompiledProgram{Name: name, Variant: variant}
}

func TestCacheSetGet(t *testing.T) {
	c := New(0)
	key := Key{Name: "lit_opaque", Variant: 3}

	if _, ok := c.Get(key); ok {
		t.Error("Get on an empty cache should miss")
	}

	want := program("lit_opaque", 3)
	c.Set(key, want)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if got != want {
		t.Error("Get returned a different program")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheVariantsAreDistinct(t *testing.T) {
	c := New(0)
	c.Set(Key{Name: "mat", Variant: 0}, program("mat", 0))
	c.Set(Key{Name: "mat", Variant: 1}, program("mat", 1))

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	got, ok := c.Get(Key{Name: "mat", Variant: 1})
	if !ok || got.Variant != 1 {
		t.Error("variant 1 should be cached independently of variant 0")
	}
}

func TestCacheSetReplaces(t *testing.T) {
	c := New(0)
	key := Key{Name: "mat", Variant: 0}

	c.Set(key, program("mat", 0))
	replacement := program("mat", 0)
	c.Set(key, replacement)

	got, _ := c.Get(key)
	if got != replacement {
		t.Error("Set with an existing key should replace the program")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(0)
	key := Key{Name: "mat", Variant: 0}
	c.Set(key, program("mat", 0))

	if !c.Delete(key) {
		t.Error("Delete of a present key should return true")
	}
	if c.Delete(key) {
		t.Error("Delete of an absent key should return false")
	}
	if _, ok := c.Get(key); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(0)
	for i := range 10 {
		c.Set(Key{Name: "mat", Variant: uint8(i)}, program("mat", uint8(i)))
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := New(2) // 2 entries per shard

	// All variants of one name can land in different shards, so force
	// enough entries to overflow every shard.
	for i := range 256 {
		c.Set(Key{Name: "mat", Variant: uint8(i)}, program("mat", uint8(i)))
	}

	if c.Len() > 2*shardCount {
		t.Errorf("Len() = %d, want at most %d after eviction", c.Len(), 2*shardCount)
	}
	if c.Stats().Evictions == 0 {
		t.Error("evictions should have occurred")
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := New(0)
	key := Key{Name: "mat", Variant: 0}

	calls := 0
	compile := func() (*backend.CompiledProgram, error) {
		calls++
		return program("mat", 0), nil
	}

	first, err := c.GetOrCompile(key, compile)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	second, err := c.GetOrCompile(key, compile)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("compile ran %d times, want 1", calls)
	}
	if first != second {
		t.Error("second GetOrCompile should return the cached program")
	}
}

func TestCacheGetOrCompileError(t *testing.T) {
	c := New(0)
	wantErr := errors.New("compile failed")

	_, err := c.GetOrCompile(Key{Name: "bad"}, func() (*backend.CompiledProgram, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrCompile = %v, want the compile error", err)
	}
	if c.Len() != 0 {
		t.Error("a failed compile must not be cached")
	}
}

func TestCacheStats(t *testing.T) {
	c := New(0)
	key := Key{Name: "mat", Variant: 0}
	c.Set(key, program("mat", 0))

	c.Get(key)                          // hit
	c.Get(Key{Name: "mat", Variant: 9}) // miss

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %d hits / %d misses, want 1/1", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %f, want 0.5", stats.HitRate)
	}

	c.ResetStats()
	stats = c.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.Evictions != 0 {
		t.Error("ResetStats should zero all counters")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(8)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				key := Key{Name: fmt.Sprintf("mat%d", g), Variant: uint8(i % 16)}
				c.Set(key, program(key.Name, key.Variant))
				c.Get(key)
			}
		}()
	}
	wg.Wait()
}
