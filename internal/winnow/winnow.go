// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package winnow implements the Winnowing algorithm (Schleimer, Wilkerson,
// Aiken, SIGMOD 2003): selecting a sparse, representative subset of
// k-gram hashes from a token stream such that any two documents sharing a
// contiguous run of tokens at least w+k-1 long are guaranteed to share at
// least one selected fingerprint.
package winnow

import "github.com/classforge/plagiarism/internal/rollinghash"

// Fingerprint is one selected k-gram: hash is the rolling hash of the
// window [start, stop] (inclusive, stop = start+k-1). data holds the raw
// token slice only when the filter was constructed with kgramData=true.
type Fingerprint struct {
	Hash  uint64
	Start int
	Stop  int
	Data  []string
}

// Filter selects fingerprints from a token stream via Winnowing.
//
// K is the k-gram length (number of tokens per window fed to the rolling
// hash); W is the number of consecutive k-gram hashes considered together
// when picking a representative. A larger W trades recall for a sparser,
// cheaper index; a larger K trades short-match sensitivity for precision.
type Filter struct {
	K         int
	W         int
	KgramData bool
}

// New constructs a Filter. Both k and w must be positive.
func New(k, w int, kgramData bool) *Filter {
	if k <= 0 || w <= 0 {
		panic("winnow: k and w must be positive")
	}
	return &Filter{K: k, W: w, KgramData: kgramData}
}

// Fingerprints computes the selected fingerprints for a token stream.
//
// Returns nil if fewer than K tokens are supplied — too short to form even
// one k-gram.
func (f *Filter) Fingerprints(tokens []string) []Fingerprint {
	n := len(tokens)
	if n < f.K {
		return nil
	}

	m := n - f.K + 1 // number of k-gram hashes
	h := make([]uint64, m)
	rh := rollinghash.New(f.K)
	for i := 0; i < n; i++ {
		hv := rh.Next(rollinghash.HashToken(tokens[i]))
		if rh.Ready() {
			h[i-f.K+1] = hv
		}
	}

	effW := f.W
	if m < effW {
		effW = m
	}

	// Monotonic deque of indices into h, values non-decreasing front to
	// back; the front is always the rightmost minimum of the current
	// window. Pushing with a >= eviction rule (rather than >) discards an
	// earlier occurrence of a tied value in favor of the later one,
	// which is exactly the "ties -> rightmost" selection rule.
	deque := make([]int, 0, effW)

	var out []Fingerprint
	lastSelected := -1

	for i := 0; i < m; i++ {
		for len(deque) > 0 && h[deque[len(deque)-1]] >= h[i] {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)

		for deque[0] <= i-effW {
			deque = deque[1:]
		}

		if i < effW-1 {
			continue
		}

		selected := deque[0]
		if selected == lastSelected {
			continue
		}
		lastSelected = selected

		fp := Fingerprint{
			Hash:  h[selected],
			Start: selected,
			Stop:  selected + f.K - 1,
		}
		if f.KgramData {
			data := make([]string, f.K)
			copy(data, tokens[selected:selected+f.K])
			fp.Data = data
		}
		out = append(out, fp)
	}
	return out
}
