// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package source

import (
	"testing"

	"github.com/classforge/plagiarism/internal/region"
)

func TestNewDerivesMetadata(t *testing.T) {
	f := New("submissions/a/main.go", "package main\n\nfunc main() {}\n")
	if f.Extension() != "go" {
		t.Errorf("Extension() = %q, want %q", f.Extension(), "go")
	}
	if f.Filename() != "main.go" {
		t.Errorf("Filename() = %q, want %q", f.Filename(), "main.go")
	}
	if f.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", f.LineCount())
	}
}

func TestIDsAreMonotonicAndOrdered(t *testing.T) {
	a := New("a.go", "x")
	b := New("b.go", "y")
	if !(a.ID < b.ID) {
		t.Errorf("expected monotonically increasing IDs, got a=%d b=%d", a.ID, b.ID)
	}
}

func TestWithIDOverride(t *testing.T) {
	f := New("a.go", "x", WithID(42))
	if f.ID != 42 {
		t.Errorf("ID = %d, want 42", f.ID)
	}
}

func TestWithInfo(t *testing.T) {
	f := New("a.go", "x", WithInfo(Info{StudentID: "s1"}))
	if f.Info == nil || f.Info.StudentID != "s1" {
		t.Errorf("expected attached Info, got %+v", f.Info)
	}
}

func TestEmptyContentHasNoLines(t *testing.T) {
	f := New("empty.go", "")
	if f.LineCount() != 0 {
		t.Errorf("LineCount() = %d, want 0 for empty content", f.LineCount())
	}
}

func TestNewTokenizedPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on tokens/mapping length mismatch")
		}
	}()
	f := New("a.go", "x")
	NewTokenized(f, []string{"(", "identifier", ")"}, []region.Region{region.New(0, 0, 0, 1)})
}

func TestRegionForMergesTokenRegions(t *testing.T) {
	f := New("a.go", "xyz")
	tokens := []string{"(", "identifier", ")"}
	mapping := []region.Region{
		region.New(0, 0, 0, 1),
		region.New(0, 0, 0, 3),
		region.New(0, 2, 0, 3),
	}
	tf := NewTokenized(f, tokens, mapping)

	got := tf.RegionFor(0, 2)
	want := region.New(0, 0, 0, 3)
	if got != want {
		t.Errorf("RegionFor(0,2) = %v, want %v", got, want)
	}
}
