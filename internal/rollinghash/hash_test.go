// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rollinghash

import "testing"

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("function_declaration")
	b := HashToken("function_declaration")
	if a != b {
		t.Errorf("HashToken not deterministic: %d != %d", a, b)
	}
}

func TestHashTokenDistinguishes(t *testing.T) {
	a := HashToken("identifier")
	b := HashToken("call_expression")
	if a == b {
		t.Error("expected distinct hashes for distinct strings (collision is allowed but improbable here)")
	}
}

func TestRollingHashNotReadyBeforeK(t *testing.T) {
	rh := New(3)
	if rh.Ready() {
		t.Error("expected not ready before k values pushed")
	}
	rh.Next(1)
	rh.Next(2)
	if rh.Ready() {
		t.Error("expected not ready after only k-1 values")
	}
	rh.Next(3)
	if !rh.Ready() {
		t.Error("expected ready after k values")
	}
}

func TestRollingHashMatchesRecompute(t *testing.T) {
	values := []uint64{10, 20, 30, 40, 50}
	k := 3

	rh := New(k)
	var last uint64
	for _, v := range values {
		last = rh.Next(v)
	}

	recomputed := recomputeWindowHash(values[len(values)-k:])
	if last != recomputed {
		t.Errorf("rolling hash = %d, want %d (recomputed from scratch)", last, recomputed)
	}
}

// recomputeWindowHash independently hashes a window of token hashes using
// the same polynomial as RollingHash, for cross-checking Next's
// incremental result against a from-scratch computation.
func recomputeWindowHash(window []uint64) uint64 {
	var h uint64
	for _, v := range window {
		h = (h*windowBase + v) % windowMod
	}
	return h
}

func TestRollingHashSlidesIndependentOfHistory(t *testing.T) {
	k := 2
	rh1 := New(k)
	rh1.Next(7)
	rh1.Next(8)
	h1 := rh1.Next(9) // window is now [8,9]

	rh2 := New(k)
	rh2.Next(8)
	h2 := rh2.Next(9) // window is [8,9] from a clean start

	if h1 != h2 {
		t.Errorf("rolling hash depends on discarded history: %d != %d", h1, h2)
	}
}

func TestKAccessor(t *testing.T) {
	rh := New(5)
	if rh.K() != 5 {
		t.Errorf("K() = %d, want 5", rh.K())
	}
}
