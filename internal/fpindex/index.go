// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fpindex

import (
	"context"
	"sort"
	"time"

	"github.com/classforge/plagiarism/internal/krange"
	"github.com/classforge/plagiarism/internal/source"
	"github.com/classforge/plagiarism/internal/winnow"
)

// Index is the inverted fingerprint index: hash -> SharedFingerprint,
// plus one FileEntry per ingested file. It is single-writer — AddFiles
// fingerprints and inserts files one at a time on the calling goroutine —
// so SharedFingerprint occurrence order is always deterministic for a
// fixed input order.
//
// Index owns every SharedFingerprint; FileEntry.Shared/Ignored hold only
// map-membership references into them, using the fingerprint's own hash
// as a stable handle rather than a pointer, so two files can each point
// at the same fingerprint without forming a reference cycle.
type Index struct {
	cfg Config

	files        map[int64]*FileEntry
	order        []int64 // file IDs in insertion order, for deterministic pair enumeration
	fingerprints map[uint64]*SharedFingerprint
}

// New constructs an empty Index for the given Config.
func New(cfg Config) *Index {
	return &Index{
		cfg:          cfg,
		files:        make(map[int64]*FileEntry),
		fingerprints: make(map[uint64]*SharedFingerprint),
	}
}

// AddFiles fingerprints each already-tokenized file and merges the
// results into the index in the given order. A caller that tokenized
// files concurrently must still pass them to AddFiles in a single call
// in the order it wants reflected in SharedFingerprint.Occurrences;
// AddFiles itself never reorders work across goroutines.
func (idx *Index) AddFiles(ctx context.Context, files []*source.TokenizedFile) {
	ctx, span := startIngestSpan(ctx, len(files))
	defer span.End()

	start := time.Now()
	filt := winnow.New(idx.cfg.K, idx.cfg.W, idx.cfg.KgramData)

	for _, f := range files {
		fps := filt.Fingerprints(f.Tokens)
		idx.addFile(f, fps)
		if f.Path != "" {
			recordFingerprintCount(ctx, f.Extension(), len(fps))
		}
	}

	recordIngestMetrics(ctx, len(files), time.Since(start))
}

func (idx *Index) addFile(f *source.TokenizedFile, fps []winnow.Fingerprint) {
	entry := newFileEntry(f)
	idx.files[f.ID] = entry
	idx.order = append(idx.order, f.ID)

	for _, fp := range fps {
		sf, ok := idx.fingerprints[fp.Hash]
		if !ok {
			sf = &SharedFingerprint{Hash: fp.Hash}
			if idx.cfg.KgramData {
				sf.KgramData = fp.Data
			}
			idx.fingerprints[fp.Hash] = sf
		}

		occ := Occurrence{
			File:       f,
			KgramStart: fp.Start,
			KgramStop:  fp.Stop,
			Region:     f.RegionFor(fp.Start, fp.Stop),
		}
		sf.Occurrences = append(sf.Occurrences, occ)
		entry.Kgrams = append(entry.Kgrams, krange.New(fp.Start, fp.Stop+1))

		// A fingerprint only becomes "shared" once a second distinct
		// file touches it; until then it lives only in the global map
		// with no file marking it shared yet. Every owning file's entry
		// is (re)marked on each insertion so that invariant ("every
		// fingerprint with >=2 occurrences appears in each owning
		// file's shared set") holds regardless of insertion order.
		if len(sf.FileIDs()) >= 2 {
			for fid := range sf.FileIDs() {
				if fe, ok := idx.files[fid]; ok {
					fe.Shared[sf.Hash] = sf
				}
			}
		}
	}
}

// ApplyBoilerplateFilter marks fingerprints touching too many distinct
// files as boilerplate. Both MaxFingerprintCount and
// MaxFingerprintPercentage are evaluated when set; either bound being
// exceeded is sufficient to filter (the stricter of the two wins,
// meaning it is only necessary for one to trip).
func (idx *Index) ApplyBoilerplateFilter(ctx context.Context) {
	if idx.cfg.MaxFingerprintCount == nil && idx.cfg.MaxFingerprintPercentage == nil {
		return
	}

	total := len(idx.files)
	filtered := 0

	for _, sf := range idx.fingerprints {
		fileIDs := sf.FileIDs()
		count := len(fileIDs)

		exceeded := false
		if idx.cfg.MaxFingerprintCount != nil && count > *idx.cfg.MaxFingerprintCount {
			exceeded = true
		}
		if idx.cfg.MaxFingerprintPercentage != nil && total > 0 {
			if float64(count) > *idx.cfg.MaxFingerprintPercentage*float64(total) {
				exceeded = true
			}
		}
		if !exceeded {
			continue
		}

		sf.Ignored = true
		filtered++
		for fid := range fileIDs {
			fe, ok := idx.files[fid]
			if !ok {
				continue
			}
			delete(fe.Shared, sf.Hash)
			fe.Ignored[sf.Hash] = sf
		}
	}

	recordBoilerplateFiltered(ctx, filtered)
}

// FileEntry returns the bookkeeping for a previously-added file.
func (idx *Index) FileEntry(id int64) (*FileEntry, bool) {
	fe, ok := idx.files[id]
	return fe, ok
}

// FileCount returns the number of files ingested so far.
func (idx *Index) FileCount() int { return len(idx.files) }

// Files returns every ingested file's entry, in insertion order.
func (idx *Index) Files() []*FileEntry {
	out := make([]*FileEntry, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.files[id])
	}
	return out
}

// CandidatePairIDs enumerates every unordered pair of distinct file IDs
// that share at least one non-ignored fingerprint, canonicalized so the
// first ID is always smaller, and returned in deterministic ascending
// (a, b) order. It does not build Pair/Fragment objects — that is
// internal/pairing's job, kept out of this package to avoid a
// fpindex<->pairing import cycle (pairing depends on fpindex, not the
// reverse).
func (idx *Index) CandidatePairIDs() [][2]int64 {
	seen := make(map[[2]int64]bool)

	for _, sf := range idx.fingerprints {
		if sf.Ignored {
			continue
		}
		ids := sortedFileIDs(sf)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if a > b {
					a, b = b, a
				}
				if a == b {
					continue // self-pairs excluded
				}
				seen[[2]int64{a, b}] = true
			}
		}
	}

	out := make([][2]int64, 0, len(seen))
	for pair := range seen {
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func sortedFileIDs(sf *SharedFingerprint) []int64 {
	idSet := sf.FileIDs()
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SharedBetween returns the non-ignored fingerprints two files have in
// common, sorted by hash for deterministic downstream iteration.
func (idx *Index) SharedBetween(aID, bID int64) []*SharedFingerprint {
	a, aOK := idx.files[aID]
	b, bOK := idx.files[bID]
	if !aOK || !bOK {
		return nil
	}

	smaller, larger := a.Shared, b.Shared
	if len(b.Shared) < len(a.Shared) {
		smaller, larger = b.Shared, a.Shared
	}

	out := make([]*SharedFingerprint, 0, len(smaller))
	for hash, sf := range smaller {
		if _, ok := larger[hash]; ok {
			out = append(out, sf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	return out
}
