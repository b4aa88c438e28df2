// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package fpindex is the inverted fingerprint index: it ingests
// tokenized files, selects fingerprints via Winnowing, and maintains the
// hash -> SharedFingerprint map every cross-file match is discovered
// through. It owns every SharedFingerprint; callers (internal/pairing)
// hold only references into it.
package fpindex

import (
	"github.com/classforge/plagiarism/internal/krange"
	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/source"
)

// Occurrence is one k-gram selection inside one file: the inclusive
// token-index range [KgramStart, KgramStop] and the source Region that
// range maps to (the merge of the per-token regions it spans).
type Occurrence struct {
	File       *source.TokenizedFile
	KgramStart int
	KgramStop  int
	Region     region.Region
}

// Range returns the occurrence's token span as a half-open krange.Range,
// the form FileEntry.Kgrams and Fragment bounds are expressed in.
func (o Occurrence) Range() krange.Range {
	return krange.New(o.KgramStart, o.KgramStop+1)
}

// SharedFingerprint is a fingerprint hash shared by one or more
// occurrences across the files ingested so far. It is created on first
// insertion and grows monotonically as more files are added; boilerplate
// filtering may later flip Ignored to true.
type SharedFingerprint struct {
	Hash        uint64
	KgramData   []string
	Occurrences []Occurrence
	Ignored     bool
}

// FileIDs returns the set of distinct file IDs touched by this
// fingerprint's occurrences.
func (sf *SharedFingerprint) FileIDs() map[int64]bool {
	ids := make(map[int64]bool, len(sf.Occurrences))
	for _, occ := range sf.Occurrences {
		ids[occ.File.ID] = true
	}
	return ids
}

// FileEntry is the index's per-file bookkeeping: which fingerprints the
// file shares with at least one other file (Shared), which were
// subsequently filtered as boilerplate (Ignored), and the token-index
// spans selected for the file (Kgrams).
type FileEntry struct {
	File    *source.TokenizedFile
	Kgrams  []krange.Range
	Shared  map[uint64]*SharedFingerprint
	Ignored map[uint64]*SharedFingerprint
}

func newFileEntry(f *source.TokenizedFile) *FileEntry {
	return &FileEntry{
		File:    f,
		Shared:  make(map[uint64]*SharedFingerprint),
		Ignored: make(map[uint64]*SharedFingerprint),
	}
}

// Config bounds an Index's fingerprinting behavior.
//
// MaxFingerprintCount and MaxFingerprintPercentage are both nil by
// default (no boilerplate filtering). When both are set, the stricter
// bound wins for any given fingerprint.
type Config struct {
	K         int
	W         int
	KgramData bool

	MaxFingerprintCount      *int
	MaxFingerprintPercentage *float64
}
