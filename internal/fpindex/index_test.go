// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fpindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/source"
)

func tokenizedFile(t *testing.T, path string, tokens []string) *source.TokenizedFile {
	t.Helper()
	mapping := make([]region.Region, len(tokens))
	for i := range tokens {
		mapping[i] = region.New(i, 0, i, 1)
	}
	return source.NewTokenized(source.New(path, ""), tokens, mapping)
}

func TestIndexAddFilesSharesFingerprintsAcrossIdenticalFiles(t *testing.T) {
	tokens := make([]string, 20)
	for i := range tokens {
		tokens[i] = "tok"
	}

	a := tokenizedFile(t, "a.go", tokens)
	b := tokenizedFile(t, "b.go", tokens)

	idx := New(Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a, b})

	pairs := idx.CandidatePairIDs()
	require.Len(t, pairs, 1)
	require.Equal(t, a.ID, pairs[0][0])
	require.Equal(t, b.ID, pairs[0][1])

	shared := idx.SharedBetween(a.ID, b.ID)
	require.NotEmpty(t, shared)
	for _, sf := range shared {
		require.False(t, sf.Ignored)
		for _, occ := range sf.Occurrences {
			require.Equal(t, 5, occ.KgramStop-occ.KgramStart+1)
		}
	}
}

func TestIndexNoSharedFingerprintsForDisjointFiles(t *testing.T) {
	aTokens := []string{"a1", "a2", "a3", "a4", "a5", "a6"}
	bTokens := []string{"b1", "b2", "b3", "b4", "b5", "b6"}

	a := tokenizedFile(t, "a.go", aTokens)
	b := tokenizedFile(t, "b.go", bTokens)

	idx := New(Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a, b})

	require.Empty(t, idx.CandidatePairIDs())
}

func TestIndexBoilerplateFilterIgnoresWidespreadFingerprints(t *testing.T) {
	header := []string{"h1", "h2", "h3", "h4", "h5", "h6"}

	idx := New(Config{K: 5, W: 4, MaxFingerprintPercentage: floatPtr(0.5)})

	var files []*source.TokenizedFile
	for i := 0; i < 4; i++ {
		body := []string{uniqueTok(i, 0), uniqueTok(i, 1)}
		tokens := append(append([]string{}, header...), body...)
		files = append(files, tokenizedFile(t, "f.go", tokens))
	}

	idx.AddFiles(context.Background(), files)
	idx.ApplyBoilerplateFilter(context.Background())

	for _, sf := range idx.fingerprints {
		if len(sf.FileIDs()) >= 3 {
			require.True(t, sf.Ignored, "fingerprint touching most files should be filtered as boilerplate")
		}
	}
}

func TestIndexSelfPairsExcluded(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f"}
	a := tokenizedFile(t, "a.go", tokens)

	idx := New(Config{K: 5, W: 4})
	idx.AddFiles(context.Background(), []*source.TokenizedFile{a})

	require.Empty(t, idx.CandidatePairIDs())
}

func floatPtr(f float64) *float64 { return &f }

func uniqueTok(i, j int) string {
	return string(rune('A'+i)) + string(rune('a'+j))
}
