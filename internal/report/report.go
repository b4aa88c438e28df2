// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report is the read-only façade a caller consumes after a batch
// analysis: summary statistics, filtered pair listings, and fragment
// accessors. Report never mutates the index or pairs it was built from.
package report

import (
	"encoding/json"
	"strconv"

	"github.com/classforge/plagiarism/internal/fpindex"
	"github.com/classforge/plagiarism/internal/pairing"
	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/source"
)

// Summary is the aggregate statistics block in the serialized report
// output.
type Summary struct {
	TotalFiles        int      `json:"totalFiles"`
	TotalPairs        int      `json:"totalPairs"`
	SuspiciousPairs   int      `json:"suspiciousPairs"`
	AverageSimilarity float64  `json:"averageSimilarity"`
	MaxSimilarity     float64  `json:"maxSimilarity"`
	Language          string   `json:"language"`
	Warnings          []string `json:"warnings"`
}

// FileView is the serialized per-file projection.
type FileView struct {
	ID        int64  `json:"id"`
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	LineCount int    `json:"lineCount"`
	Info      *source.Info `json:"info,omitempty"`
}

// PairView is the serialized per-pair projection.
type PairView struct {
	LeftFileID  int64   `json:"leftFileId"`
	RightFileID int64   `json:"rightFileId"`
	Similarity  float64 `json:"similarity"`
	Overlap     int     `json:"overlap"`
	Longest     int     `json:"longest"`
}

// FragmentView is the serialized per-fragment projection.
type FragmentView struct {
	LeftSelection  RegionView `json:"leftSelection"`
	RightSelection RegionView `json:"rightSelection"`
	Length         int        `json:"length"`
}

// RegionView is the serialized coordinate shape for a fragment selection.
type RegionView struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// Report is the immutable result of one Analyze call: the files
// considered, the language they were analyzed as, the options used, any
// per-file warnings, and the index/pairs the analysis produced.
//
// Report owns the TokenizedFile slice and the Index; pairing.Pair values
// are computed once at construction and cached — every accessor below is
// a pure projection over that cached state.
type Report struct {
	BatchID  string
	Language string
	Warnings []string

	files *indexedFiles
	index *fpindex.Index
	pairs []*pairing.Pair
}

type indexedFiles struct {
	byID  map[int64]*source.TokenizedFile
	order []int64
}

// New builds a Report from a completed Index and the TokenizedFiles that
// fed it. Pairs are built once, here, via pairing.BuildAll, and cached
// for every subsequent accessor.
func New(batchID, language string, files []*source.TokenizedFile, idx *fpindex.Index, pairCfg pairing.Config, warnings []string) *Report {
	fv := &indexedFiles{byID: make(map[int64]*source.TokenizedFile, len(files))}
	for _, f := range files {
		fv.byID[f.ID] = f
		fv.order = append(fv.order, f.ID)
	}

	return &Report{
		BatchID:  batchID,
		Language: language,
		Warnings: warnings,
		files:    fv,
		index:    idx,
		pairs:    pairing.BuildAll(idx, pairCfg, pairing.BySimilarity),
	}
}

// Files returns every analyzed TokenizedFile in original input order.
func (r *Report) Files() []*source.TokenizedFile {
	out := make([]*source.TokenizedFile, 0, len(r.files.order))
	for _, id := range r.files.order {
		out = append(out, r.files.byID[id])
	}
	return out
}

// GetPairs returns every pair that survived MinSimilarity filtering,
// sorted by similarity descending with a deterministic
// (leftFileId, rightFileId) ascending tie-break.
func (r *Report) GetPairs() []*pairing.Pair {
	out := make([]*pairing.Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// GetTopPairs returns at most n pairs, highest similarity first.
func (r *Report) GetTopPairs(n int) []*pairing.Pair {
	if n > len(r.pairs) {
		n = len(r.pairs)
	}
	out := make([]*pairing.Pair, n)
	copy(out, r.pairs[:n])
	return out
}

// GetSuspiciousPairs returns every pair at or above threshold, preserving
// the similarity-descending order GetPairs already guarantees.
func (r *Report) GetSuspiciousPairs(threshold float64) []*pairing.Pair {
	out := make([]*pairing.Pair, 0)
	for _, p := range r.pairs {
		if p.Similarity() >= threshold {
			out = append(out, p)
		}
	}
	return out
}

// GetFragments returns the fragments of a specific pair, or nil if the
// pair is not part of this report.
func (r *Report) GetFragments(p *pairing.Pair) []pairing.Fragment {
	if p == nil {
		return nil
	}
	for _, q := range r.pairs {
		if q == p {
			return p.Fragments()
		}
	}
	return nil
}

// GetSummary computes the aggregate statistics block.
func (r *Report) GetSummary() Summary {
	s := Summary{
		TotalFiles: len(r.files.order),
		TotalPairs: len(r.pairs),
		Language:   r.Language,
		Warnings:   append([]string(nil), r.Warnings...),
	}

	if len(r.pairs) == 0 {
		return s
	}

	var total float64
	for _, p := range r.pairs {
		total += p.Similarity()
		if p.Similarity() > s.MaxSimilarity {
			s.MaxSimilarity = p.Similarity()
		}
		if p.Similarity() >= suspiciousThreshold {
			s.SuspiciousPairs++
		}
	}
	s.AverageSimilarity = total / float64(len(r.pairs))
	return s
}

// suspiciousThreshold is the default used by GetSummary.SuspiciousPairs;
// GetSuspiciousPairs lets a caller pick a different cutoff explicitly.
const suspiciousThreshold = 0.5

// MarshalJSON serializes the report in a stable shape so an external
// collaborator can hand it directly to a REST response without bespoke
// projection code.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := struct {
		Summary   Summary                   `json:"summary"`
		Pairs     []PairView                `json:"pairs"`
		Files     []FileView                `json:"files"`
		Fragments map[string][]FragmentView `json:"fragments"`
	}{
		Summary:   r.GetSummary(),
		Fragments: make(map[string][]FragmentView, len(r.pairs)),
	}

	for _, f := range r.Files() {
		out.Files = append(out.Files, FileView{
			ID:        f.ID,
			Path:      f.Path,
			Filename:  f.Filename(),
			LineCount: f.LineCount(),
			Info:      f.Info,
		})
	}

	for _, p := range r.pairs {
		out.Pairs = append(out.Pairs, PairView{
			LeftFileID:  p.LeftFileID,
			RightFileID: p.RightFileID,
			Similarity:  p.Similarity(),
			Overlap:     p.Overlap(),
			Longest:     p.Longest(),
		})

		key := pairKey(p.LeftFileID, p.RightFileID)
		for _, frag := range p.Fragments() {
			out.Fragments[key] = append(out.Fragments[key], FragmentView{
				LeftSelection:  regionView(frag.LeftSelection),
				RightSelection: regionView(frag.RightSelection),
				Length:         frag.Length(),
			})
		}
	}

	return json.Marshal(out)
}

func pairKey(left, right int64) string {
	return strconv.FormatInt(left, 10) + "-" + strconv.FormatInt(right, 10)
}

func regionView(reg region.Region) RegionView {
	return RegionView{
		StartRow: reg.StartRow,
		StartCol: reg.StartCol,
		EndRow:   reg.EndRow,
		EndCol:   reg.EndCol,
	}
}
