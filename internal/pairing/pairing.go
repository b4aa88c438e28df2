// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pairing reconstructs per-file-pair matches from a fingerprint
// index: it expands shared fingerprints into PairedOccurrences, coalesces
// them into maximal contiguous Fragments, and scores pairwise similarity.
package pairing

import (
	"sort"

	"github.com/classforge/plagiarism/internal/fpindex"
	"github.com/classforge/plagiarism/internal/krange"
	"github.com/classforge/plagiarism/internal/region"
)

// PairedOccurrence is one matching k-gram occurrence between a specific
// (left, right) file, both referencing the same SharedFingerprint.
type PairedOccurrence struct {
	Left        fpindex.Occurrence
	Right       fpindex.Occurrence
	Fingerprint *fpindex.SharedFingerprint
}

// Config bounds which fragments/pairs survive into the output.
type Config struct {
	// MinFragmentLength discards fragments shorter than this many
	// k-grams. Zero means no filtering.
	MinFragmentLength int

	// MinSimilarity drops pairs whose Similarity falls below this
	// threshold. Zero means no filtering.
	MinSimilarity float64
}

// Fragment is a maximal contiguous run of PairedOccurrences, strictly
// monotone in both files' k-gram indices.
type Fragment struct {
	LeftKgrams     krange.Range
	RightKgrams    krange.Range
	Pairs          []PairedOccurrence
	LeftSelection  region.Region
	RightSelection region.Region
}

// Length returns the fragment's length in k-grams: the number of k-gram
// start positions its left side spans. LeftKgrams covers those k-grams'
// tokens, which is k-1 more than the k-gram count.
func (f Fragment) Length() int {
	if len(f.Pairs) == 0 {
		return 0
	}
	k := f.Pairs[0].Left.KgramStop - f.Pairs[0].Left.KgramStart + 1
	return f.LeftKgrams.Length() - (k - 1)
}

// Pair is the aggregate of every PairedOccurrence between one unordered
// file pair, canonicalized so LeftFileID < RightFileID, plus its derived
// fragments and similarity metrics.
//
// A Pair owns no SharedFingerprint state — it only projects references
// the fpindex.Index already owns.
type Pair struct {
	LeftFileID  int64
	RightFileID int64

	occurrences []PairedOccurrence
	fragments   []Fragment

	similarity float64
	overlap    int
	longest    int
}

// LeftFileID/RightFileID accessors are exported fields above; the rest
// of Pair's state is read through these accessors to keep invariants
// (monotone fragment construction, cached metrics) from being bypassed.

// Fragments returns the pair's fragments that survived MinFragmentLength
// filtering, sorted by LeftKgrams.From.
func (p *Pair) Fragments() []Fragment { return p.fragments }

// Similarity is (leftCovered+rightCovered) / (|leftTokens|+|rightTokens|),
// computed over the surviving fragments only.
func (p *Pair) Similarity() float64 { return p.similarity }

// Overlap is the total number of tokens covered by surviving fragments
// across both sides (the numerator of Similarity).
func (p *Pair) Overlap() int { return p.overlap }

// Longest is the length, in k-grams, of the longest surviving fragment.
func (p *Pair) Longest() int { return p.longest }

// RawPairCount returns the number of PairedOccurrences before fragment
// coalescing or MinFragmentLength filtering — i.e. including the
// cartesian-cross-product inflation that a corpus with repetitive
// internal structure can produce. A caller comparing RawPairCount to
// len(Fragments) can detect that inflation without the library silently
// deduplicating it.
func (p *Pair) RawPairCount() int { return len(p.occurrences) }

// New builds a Pair from the fingerprints two FileEntries share in idx,
// excluding any fingerprint flagged ignored (boilerplate-filtered).
// Returns nil if the two entries share no non-ignored fingerprint, or if
// leftID == rightID (self-pairs are always excluded).
func New(idx *fpindex.Index, leftID, rightID int64, cfg Config) *Pair {
	if leftID == rightID {
		return nil
	}
	if leftID > rightID {
		leftID, rightID = rightID, leftID
	}

	left, leftOK := idx.FileEntry(leftID)
	right, rightOK := idx.FileEntry(rightID)
	if !leftOK || !rightOK {
		return nil
	}

	shared := idx.SharedBetween(leftID, rightID)
	if len(shared) == 0 {
		return nil
	}

	var occs []PairedOccurrence
	for _, sf := range shared {
		leftOccs := occurrencesForFile(sf, leftID)
		rightOccs := occurrencesForFile(sf, rightID)
		for _, lo := range leftOccs {
			for _, ro := range rightOccs {
				occs = append(occs, PairedOccurrence{Left: lo, Right: ro, Fingerprint: sf})
			}
		}
	}
	if len(occs) == 0 {
		return nil
	}

	p := &Pair{LeftFileID: left.File.ID, RightFileID: right.File.ID, occurrences: occs}
	p.buildFragments(cfg)
	p.computeSimilarity(left.File.Tokens, right.File.Tokens)
	return p
}

func occurrencesForFile(sf *fpindex.SharedFingerprint, fileID int64) []fpindex.Occurrence {
	var out []fpindex.Occurrence
	for _, occ := range sf.Occurrences {
		if occ.File.ID == fileID {
			out = append(out, occ)
		}
	}
	return out
}

// buildFragments greedily coalesces paired occurrences into fragments:
// sort by left k-gram start, then merge adjacent-or-overlapping runs
// that are also strictly monotone on the right side.
func (p *Pair) buildFragments(cfg Config) {
	sorted := make([]PairedOccurrence, len(p.occurrences))
	copy(sorted, p.occurrences)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Left.KgramStart != sorted[j].Left.KgramStart {
			return sorted[i].Left.KgramStart < sorted[j].Left.KgramStart
		}
		return sorted[i].Right.KgramStart < sorted[j].Right.KgramStart
	})

	var runs [][]PairedOccurrence
	for _, occ := range sorted {
		if len(runs) > 0 {
			run := runs[len(runs)-1]
			last := run[len(run)-1]
			if belongsToRun(last, occ) {
				runs[len(runs)-1] = append(run, occ)
				continue
			}
		}
		runs = append(runs, []PairedOccurrence{occ})
	}

	fragments := make([]Fragment, 0, len(runs))
	for _, run := range runs {
		frag := fragmentFromRun(run)
		if frag.Length() < cfg.MinFragmentLength {
			continue
		}
		fragments = append(fragments, frag)
	}
	p.fragments = fragments
}

// belongsToRun reports whether occ continues the run ending at last:
// strictly increasing left start, strictly increasing right start, and
// no gap greater than one k-gram on either side.
func belongsToRun(last, occ PairedOccurrence) bool {
	if occ.Left.KgramStart <= last.Left.KgramStart {
		return false
	}
	if occ.Right.KgramStart <= last.Right.KgramStart {
		return false
	}
	if occ.Left.KgramStart > last.Left.KgramStop+1 {
		return false
	}
	if occ.Right.KgramStart > last.Right.KgramStop+1 {
		return false
	}
	return true
}

func fragmentFromRun(run []PairedOccurrence) Fragment {
	leftRanges := make([]krange.Range, len(run))
	rightRanges := make([]krange.Range, len(run))
	leftRegions := make([]region.Region, len(run))
	rightRegions := make([]region.Region, len(run))

	for i, occ := range run {
		leftRanges[i] = occ.Left.Range()
		rightRanges[i] = occ.Right.Range()
		leftRegions[i] = occ.Left.Region
		rightRegions[i] = occ.Right.Region
	}

	leftKgrams := leftRanges[0]
	for _, r := range leftRanges[1:] {
		leftKgrams = leftKgrams.Merge(r)
	}
	rightKgrams := rightRanges[0]
	for _, r := range rightRanges[1:] {
		rightKgrams = rightKgrams.Merge(r)
	}

	return Fragment{
		LeftKgrams:     leftKgrams,
		RightKgrams:    rightKgrams,
		Pairs:          run,
		LeftSelection:  region.MergeAll(leftRegions),
		RightSelection: region.MergeAll(rightRegions),
	}
}

func (p *Pair) computeSimilarity(leftTokens, rightTokens []string) {
	leftRanges := make([]krange.Range, 0, len(p.fragments))
	rightRanges := make([]krange.Range, 0, len(p.fragments))
	longest := 0

	for _, f := range p.fragments {
		leftRanges = append(leftRanges, f.LeftKgrams)
		rightRanges = append(rightRanges, f.RightKgrams)
		if l := f.Length(); l > longest {
			longest = l
		}
	}

	leftCovered := krange.TotalCovered(leftRanges)
	rightCovered := krange.TotalCovered(rightRanges)

	p.overlap = leftCovered + rightCovered
	p.longest = longest

	denom := len(leftTokens) + len(rightTokens)
	if denom == 0 {
		p.similarity = 0
		return
	}
	p.similarity = float64(p.overlap) / float64(denom)
}

// OrderBy names the criterion BuildAll sorts its results by.
type OrderBy string

const (
	// BySimilarity sorts descending by Pair.Similarity (the default).
	BySimilarity OrderBy = "similarity"
	// ByOverlap sorts descending by Pair.Overlap.
	ByOverlap OrderBy = "overlap"
	// ByLongest sorts descending by Pair.Longest.
	ByLongest OrderBy = "longest"
)

// BuildAll constructs every candidate Pair from idx, drops any whose
// Similarity falls below cfg.MinSimilarity, and sorts the survivors by
// orderBy descending with a deterministic (LeftFileID, RightFileID)
// ascending tie-break.
func BuildAll(idx *fpindex.Index, cfg Config, orderBy OrderBy) []*Pair {
	candidates := idx.CandidatePairIDs()
	pairs := make([]*Pair, 0, len(candidates))

	for _, ids := range candidates {
		p := New(idx, ids[0], ids[1], cfg)
		if p == nil {
			continue
		}
		if p.similarity < cfg.MinSimilarity {
			continue
		}
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		var av, bv float64
		switch orderBy {
		case ByOverlap:
			av, bv = float64(a.overlap), float64(b.overlap)
		case ByLongest:
			av, bv = float64(a.longest), float64(b.longest)
		default:
			av, bv = a.similarity, b.similarity
		}
		if av != bv {
			return av > bv
		}
		if a.LeftFileID != b.LeftFileID {
			return a.LeftFileID < b.LeftFileID
		}
		return a.RightFileID < b.RightFileID
	})

	return pairs
}
