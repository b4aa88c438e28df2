// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package region provides a half-open source-code selection type.
//
// A Region identifies a span of source text by row/column coordinates,
// the same way a tree-sitter node or an LSP range does. It is the unit
// every token and every fragment selection in the plagiarism detector is
// expressed in.
package region

import "fmt"

// Region is a half-open span of source text, identified by zero-indexed
// row/column coordinates.
//
// A Region is valid when its start does not follow its end in document
// order: either it spans multiple rows (startRow < endRow), or it spans a
// single row with a possibly empty column range (startRow == endRow &&
// startCol <= endCol). Columns are byte offsets within their row, consistent with
// tree-sitter's Point convention.
type Region struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// New builds a Region from explicit coordinates.
func New(startRow, startCol, endRow, endCol int) Region {
	return Region{StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
}

// Valid reports whether r satisfies the half-open ordering invariant.
func (r Region) Valid() bool {
	if r.StartRow < 0 || r.StartCol < 0 || r.EndRow < 0 || r.EndCol < 0 {
		return false
	}
	if r.StartRow < r.EndRow {
		return true
	}
	return r.StartRow == r.EndRow && r.StartCol <= r.EndCol
}

// Less orders regions by (startRow, startCol, endRow, endCol).
func (r Region) Less(other Region) bool {
	if r.StartRow != other.StartRow {
		return r.StartRow < other.StartRow
	}
	if r.StartCol != other.StartCol {
		return r.StartCol < other.StartCol
	}
	if r.EndRow != other.EndRow {
		return r.EndRow < other.EndRow
	}
	return r.EndCol < other.EndCol
}

// pointLess orders two (row,col) points in document order.
func pointLess(row1, col1, row2, col2 int) bool {
	if row1 != row2 {
		return row1 < row2
	}
	return col1 < col2
}

// Overlaps reports whether r and other share at least one point.
//
// Two regions overlap unless one ends at or before the point where the
// other begins.
func (r Region) Overlaps(other Region) bool {
	rBeforeOther := pointLess(r.EndRow, r.EndCol, other.StartRow, other.StartCol) || (r.EndRow == other.StartRow && r.EndCol == other.StartCol)
	otherBeforeR := pointLess(other.EndRow, other.EndCol, r.StartRow, r.StartCol) || (other.EndRow == r.StartRow && other.EndCol == r.StartCol)
	return !rBeforeOther && !otherBeforeR
}

// Merge returns the smallest Region containing both r and other.
//
// Merge is commutative and associative: Merge(a, b) == Merge(b, a), and
// Merge(Merge(a, b), c) == Merge(a, Merge(b, c)).
func (r Region) Merge(other Region) Region {
	out := r

	if pointLess(other.StartRow, other.StartCol, r.StartRow, r.StartCol) {
		out.StartRow, out.StartCol = other.StartRow, other.StartCol
	}
	if pointLess(r.EndRow, r.EndCol, other.EndRow, other.EndCol) {
		out.EndRow, out.EndCol = other.EndRow, other.EndCol
	}
	return out
}

// MergeAll merges a non-empty slice of regions into their bounding region.
// It panics if regions is empty; callers are expected to guard on length.
func MergeAll(regions []Region) Region {
	out := regions[0]
	for _, r := range regions[1:] {
		out = out.Merge(r)
	}
	return out
}

// String renders the region as "startRow:startCol-endRow:endCol".
func (r Region) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.StartRow, r.StartCol, r.EndRow, r.EndCol)
}
