// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classforge/plagiarism/internal/fpindex"
	"github.com/classforge/plagiarism/internal/pairing"
	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/source"
)

func tokenizedFile(path string, tokens []string) *source.TokenizedFile {
	mapping := make([]region.Region, len(tokens))
	for i := range tokens {
		mapping[i] = region.New(i, 0, i, 1)
	}
	return source.NewTokenized(source.New(path, ""), tokens, mapping)
}

func uniqueTokens(prefix string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = prefix + string(rune('a'+(i%26)))
	}
	return out
}

func TestReportSummaryAndPairs(t *testing.T) {
	tokens := uniqueTokens("t", 60)
	a := tokenizedFile("a.go", tokens)
	b := tokenizedFile("b.go", tokens)
	c := tokenizedFile("c.go", uniqueTokens("z", 60))

	idx := fpindex.New(fpindex.Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a, b, c})

	r := New("batch-1", "go", []*source.TokenizedFile{a, b, c}, idx, pairing.Config{}, nil)

	summary := r.GetSummary()
	require.Equal(t, 3, summary.TotalFiles)
	require.Equal(t, 1, summary.TotalPairs)
	require.Equal(t, "go", summary.Language)

	pairs := r.GetPairs()
	require.Len(t, pairs, 1)
	require.Equal(t, a.ID, pairs[0].LeftFileID)
	require.Equal(t, b.ID, pairs[0].RightFileID)

	top := r.GetTopPairs(10)
	require.Len(t, top, 1)

	suspicious := r.GetSuspiciousPairs(0.9)
	require.LessOrEqual(t, len(suspicious), len(pairs))
}

func TestReportMarshalJSON(t *testing.T) {
	tokens := uniqueTokens("t", 40)
	a := tokenizedFile("a.go", tokens)
	b := tokenizedFile("b.go", tokens)

	idx := fpindex.New(fpindex.Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a, b})

	r := New("batch-2", "go", []*source.TokenizedFile{a, b}, idx, pairing.Config{}, []string{"a warning"})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "summary")
	require.Contains(t, decoded, "pairs")
	require.Contains(t, decoded, "files")
	require.Contains(t, decoded, "fragments")
}

func TestReportEmptyPairsSummary(t *testing.T) {
	a := tokenizedFile("a.go", uniqueTokens("a", 30))
	b := tokenizedFile("b.go", uniqueTokens("b", 30))

	idx := fpindex.New(fpindex.Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a, b})

	r := New("batch-3", "go", []*source.TokenizedFile{a, b}, idx, pairing.Config{}, nil)
	summary := r.GetSummary()
	require.Equal(t, 0, summary.TotalPairs)
	require.Equal(t, 0.0, summary.AverageSimilarity)
	require.Equal(t, 0.0, summary.MaxSimilarity)
}
