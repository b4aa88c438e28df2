// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plagiarism

import (
	"github.com/classforge/plagiarism/internal/source"
)

// Options resolves the detector's tunable behavior for one Analyze call.
// Validated with github.com/go-playground/validator/v10 before any work begins;
// validation failures are reported via ErrUnsupportedLanguage-class
// errors rather than silently clamped.
type Options struct {
	// Language selects the tree-sitter grammar every input in the batch
	// is tokenized with. Required; must name a language registered in
	// internal/tokenize.Default.
	Language string `validate:"required"`

	// KgramLength (k) is the number of tokens per k-gram. Default: 23.
	KgramLength int `validate:"gte=1"`

	// KgramsInWindow (w) is the Winnow window size, in k-grams.
	// Default: 17.
	KgramsInWindow int `validate:"gte=1"`

	// KgramData, when true, retains each fingerprint's token slice.
	// Default: false.
	KgramData bool

	// MaxFingerprintPercentage filters fingerprints present in more
	// than this fraction of the batch's files. Nil disables the bound.
	MaxFingerprintPercentage *float64 `validate:"omitempty,gte=0,lte=1"`

	// MaxFingerprintCount filters fingerprints present in more than
	// this many distinct files. Nil disables the bound.
	MaxFingerprintCount *int `validate:"omitempty,gte=1"`

	// IncludeComments tokenizes comment-bearing AST nodes when true.
	// Default: false.
	IncludeComments bool

	// MinFragmentLength discards fragments shorter than this many
	// k-grams. Default: 0.
	MinFragmentLength int `validate:"gte=0"`

	// MinSimilarity drops pairs below this similarity from the Report.
	// Default: 0.
	MinSimilarity float64 `validate:"gte=0,lte=1"`

	// CacheCapacity bounds the intra-batch tokenization memoization
	// cache (internal/fpcache). Zero falls back to fpcache's default.
	CacheCapacity int `validate:"gte=0"`
}

// DefaultOptions returns sane defaults for a given language.
func DefaultOptions(language string) Options {
	return Options{
		Language:       language,
		KgramLength:    23,
		KgramsInWindow: 17,
	}
}

// Input is one submission in an Analyze batch. ID is auto-assigned in
// batch order when nil.
type Input struct {
	// ID overrides the detector's monotonic file ID assignment when
	// non-nil, so a caller can correlate a Report back to its own
	// submission identifiers.
	ID *int64

	// Path is informational only; it travels into the Report's file
	// listing and is never consulted to pick a tokenizer, since Language
	// is fixed per-batch.
	Path string `validate:"required"`

	// Content is the submission's UTF-8 source text.
	Content string

	// Info carries optional submission metadata (student/submission
	// identifiers, labels) that travels unmodified into the Report.
	Info *source.Info
}
