// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package region

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		r    Region
		want bool
	}{
		{"multi-row", New(0, 5, 2, 1), true},
		{"single-row-nonempty", New(1, 2, 1, 5), true},
		{"single-row-empty-ok", New(1, 2, 1, 2), true},
		{"single-row-inverted", New(1, 5, 1, 2), false},
		{"multi-row-inverted", New(3, 0, 1, 0), false},
		{"negative", New(-1, 0, 1, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := New(0, 0, 0, 10)
	b := New(0, 5, 0, 15)
	c := New(0, 10, 0, 20)
	d := New(1, 0, 1, 5)

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) || c.Overlaps(a) {
		t.Error("adjacent half-open regions must not overlap")
	}
	if a.Overlaps(d) {
		t.Error("regions on different rows must not overlap")
	}
}

func TestMergeCommutativeAssociative(t *testing.T) {
	a := New(0, 0, 0, 5)
	b := New(0, 3, 1, 2)
	c := New(2, 0, 2, 1)

	if a.Merge(b) != b.Merge(a) {
		t.Error("Merge must be commutative")
	}
	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))
	if left != right {
		t.Errorf("Merge must be associative: %v != %v", left, right)
	}
}

func TestMergeAll(t *testing.T) {
	regions := []Region{
		New(2, 0, 2, 5),
		New(0, 1, 0, 3),
		New(1, 0, 1, 1),
	}
	got := MergeAll(regions)
	want := New(0, 1, 2, 5)
	if got != want {
		t.Errorf("MergeAll() = %v, want %v", got, want)
	}
}

func TestLessTotalOrder(t *testing.T) {
	a := New(0, 0, 0, 1)
	b := New(0, 1, 0, 2)
	if !a.Less(b) {
		t.Error("expected a < b")
	}
	if b.Less(a) {
		t.Error("expected !(b < a)")
	}
}
