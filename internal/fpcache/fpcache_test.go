// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fpcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/source"
)

func TestCacheGetMiss(t *testing.T) {
	c := New(4)
	_, ok := c.Get(HashContent("anything"))
	require.False(t, ok)
	require.Equal(t, int64(1), c.Stats().Misses)
}

func TestCachePutGetHit(t *testing.T) {
	c := New(4)
	f := source.NewTokenized(source.New("a.go", "x"), []string{"(", "id", ")"}, []region.Region{
		region.New(0, 0, 0, 0), region.New(0, 0, 0, 1), region.New(0, 1, 0, 1),
	})

	key := HashContent("x")
	c.Put(key, f)

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Same(t, f, got)
	require.Equal(t, int64(1), c.Stats().Hits)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	fa := source.NewTokenized(source.New("a.go", "a"), nil, nil)
	fb := source.NewTokenized(source.New("b.go", "b"), nil, nil)
	fc := source.NewTokenized(source.New("c.go", "c"), nil, nil)

	ka, kb, kc := HashContent("a"), HashContent("b"), HashContent("c")
	c.Put(ka, fa)
	c.Put(kb, fb)

	// touch a so b becomes least-recently-used
	_, _ = c.Get(ka)
	c.Put(kc, fc)

	_, aOK := c.Get(ka)
	_, bOK := c.Get(kb)
	_, cOK := c.Get(kc)

	require.True(t, aOK)
	require.False(t, bOK, "b should have been evicted as least recently used")
	require.True(t, cOK)
}

func TestCacheClearResetsEntriesNotCounters(t *testing.T) {
	c := New(4)
	f := source.NewTokenized(source.New("a.go", "x"), nil, nil)
	key := HashContent("x")
	c.Put(key, f)
	_, _ = c.Get(key)

	c.Clear()

	require.Equal(t, 0, c.Stats().Entries)
	require.Equal(t, int64(1), c.Stats().Hits)

	_, ok := c.Get(key)
	require.False(t, ok)
}
