// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package fpcache memoizes tokenization results within a single analysis
// batch, keyed by content hash, so a submission byte-identical to one
// already seen in the same batch is tokenized once.
//
// This is pure performance: it has no effect on Report contents, and it
// is scoped to one batch — nothing here persists across Analyze calls.
// It caches *tokenization*, not the fingerprint index itself.
package fpcache

import (
	"container/list"
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/classforge/plagiarism/internal/source"
)

// DefaultCapacity bounds the number of distinct content hashes tracked
// before the least-recently-used entry is evicted.
const DefaultCapacity = 4096

// Cache is a capacity-bounded LRU of contentHash -> *source.TokenizedFile.
// It has no background warm-up loop; a library call has no "background"
// to run one in, so entries are populated synchronously on first miss.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[[32]byte]*list.Element
	order    *list.List // front = most recently used

	hits   int64
	misses int64
}

type entry struct {
	key  [32]byte
	file *source.TokenizedFile
}

// New constructs a Cache with the given capacity. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[[32]byte]*list.Element),
		order:    list.New(),
	}
}

// HashContent computes the cache key for a file's content.
func HashContent(content string) [32]byte {
	return sha256.Sum256([]byte(content))
}

// Get returns the cached tokenization for content, if present, moving it
// to the front of the LRU order.
func (c *Cache) Get(key [32]byte) (*source.TokenizedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	c.order.MoveToFront(el)
	atomic.AddInt64(&c.hits, 1)
	return el.Value.(*entry).file, true
}

// Put inserts or refreshes the cached tokenization for key, evicting the
// least-recently-used entry if the cache is at capacity.
func (c *Cache) Put(key [32]byte, file *source.TokenizedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).file = file
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}

	el := c.order.PushFront(&entry{key: key, file: file})
	c.items[key] = el
}

// Stats reports hit/miss counters and current occupancy.
type Stats struct {
	Hits     int64
	Misses   int64
	Entries  int
	Capacity int
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:     atomic.LoadInt64(&c.hits),
		Misses:   atomic.LoadInt64(&c.misses),
		Entries:  c.order.Len(),
		Capacity: c.capacity,
	}
}

// Clear empties the cache without resetting hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[[32]byte]*list.Element)
	c.order = list.New()
}
