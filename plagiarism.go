// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package plagiarism is the library entry point for the source-code
// plagiarism detector: it accepts an ordered batch of submissions and
// returns a structured similarity Report. Routing, auth, persistence,
// and rendering are external collaborators — this package's whole
// contract is Analyze.
package plagiarism

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/classforge/plagiarism/internal/fpcache"
	"github.com/classforge/plagiarism/internal/fpindex"
	"github.com/classforge/plagiarism/internal/logging"
	"github.com/classforge/plagiarism/internal/pairing"
	"github.com/classforge/plagiarism/internal/region"
	"github.com/classforge/plagiarism/internal/report"
	"github.com/classforge/plagiarism/internal/source"
	"github.com/classforge/plagiarism/internal/tokenize"
)

var validate = validator.New()

// Analyze tokenizes every input via the Tokenizer registered for
// opts.Language, selects fingerprints via Winnowing, indexes them, builds
// pairwise fragments, and returns a Report.
//
// The caller sees either a complete Report (possibly with non-empty
// Warnings) or exactly one typed error — never both.
func Analyze(ctx context.Context, inputs []Input, opts Options) (*report.Report, error) {
	return AnalyzeWithLogger(ctx, inputs, opts, logging.Default())
}

// AnalyzeWithLogger is Analyze with an explicit logger, for hosts that
// want the detector's tokenize/index diagnostics folded into their own
// logging pipeline instead of the package default.
func AnalyzeWithLogger(ctx context.Context, inputs []Input, opts Options, log *logging.Logger) (*report.Report, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, err)
	}

	tokenizer, ok := tokenize.Default.GetByLanguage(opts.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, opts.Language)
	}
	tokenizer = tokenizer.WithOptions(tokenize.Options{IncludeComments: opts.IncludeComments})

	for i := range inputs {
		if err := validate.Struct(inputs[i]); err != nil {
			return nil, fmt.Errorf("plagiarism: invalid input at index %d: %w", i, err)
		}
	}

	files, warnings, err := tokenizeBatch(ctx, inputs, tokenizer, opts, log)
	if err != nil {
		return nil, err
	}
	if len(files) < 2 {
		log.Warn("insufficient files survived tokenization", "got", len(files), "required", 2)
		return nil, &InsufficientFilesError{Required: 2, Got: len(files)}
	}

	idx := fpindex.New(fpindex.Config{
		K:                        opts.KgramLength,
		W:                        opts.KgramsInWindow,
		KgramData:                opts.KgramData,
		MaxFingerprintCount:      opts.MaxFingerprintCount,
		MaxFingerprintPercentage: opts.MaxFingerprintPercentage,
	})
	idx.AddFiles(ctx, files)
	idx.ApplyBoilerplateFilter(ctx)

	pairCfg := pairing.Config{
		MinFragmentLength: opts.MinFragmentLength,
		MinSimilarity:     opts.MinSimilarity,
	}

	return report.New(uuid.NewString(), opts.Language, files, idx, pairCfg, warnings), nil
}

// tokenizeBatch tokenizes every input, parallelizing across a bounded
// worker pool; index insertion must still be serialized, and that
// serialization happens here, on the calling goroutine, by committing
// results strictly in original input order once every worker has
// finished. Each surviving file is re-wrapped at commit time, so
// auto-assigned IDs follow input order rather than worker scheduling.
//
// A per-file ParseError is recovered locally: it becomes a warning and
// the file is dropped from the batch, never failing the whole run.
func tokenizeBatch(ctx context.Context, inputs []Input, tokenizer tokenize.Tokenizer, opts Options, log *logging.Logger) ([]*source.TokenizedFile, []string, error) {
	cacheCap := opts.CacheCapacity
	cache := fpcache.New(cacheCap)

	results := make([]*source.TokenizedFile, len(inputs))
	parseErrs := make([]error, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range inputs {
		i := i
		g.Go(func() error {
			tf, perr := tokenizeOne(gCtx, inputs[i], tokenizer, opts, cache)
			results[i] = tf
			parseErrs[i] = perr
			return nil // per-file errors are recovered, never abort the group
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	files := make([]*source.TokenizedFile, 0, len(inputs))
	var warnings []string
	for i, tf := range results {
		if parseErrs[i] != nil {
			log.Warn("dropping file that failed to parse", "path", inputs[i].Path, "error", parseErrs[i])
			warnings = append(warnings, fmt.Sprintf("%s: %v", inputs[i].Path, parseErrs[i]))
			continue
		}
		files = append(files, rebind(tf, inputs[i]))
	}
	return files, warnings, nil
}

func tokenizeOne(ctx context.Context, in Input, tokenizer tokenize.Tokenizer, opts Options, cache *fpcache.Cache) (*source.TokenizedFile, error) {
	key := fpcache.HashContent(in.Content)
	if cached, ok := cache.Get(key); ok {
		return rebind(cached, in), nil
	}

	toks, err := tokenizer.Tokenize(ctx, []byte(in.Content))
	if err != nil {
		return nil, err
	}

	tokens := make([]string, len(toks))
	mapping := make([]region.Region, len(toks))
	for i, tok := range toks {
		tokens[i] = tok.Text
		mapping[i] = tok.Location
	}

	var fileOpts []source.Option
	if in.ID != nil {
		fileOpts = append(fileOpts, source.WithID(*in.ID))
	}
	if in.Info != nil {
		fileOpts = append(fileOpts, source.WithInfo(*in.Info))
	}

	f := source.New(in.Path, in.Content, fileOpts...)
	tf := source.NewTokenized(f, tokens, mapping)
	cache.Put(key, tf)
	return tf, nil
}

// rebind re-wraps a cached tokenization under this input's own File
// identity (ID/path/info), since the cache is keyed purely by content
// and two distinct submissions can share byte-identical content.
func rebind(cached *source.TokenizedFile, in Input) *source.TokenizedFile {
	var fileOpts []source.Option
	if in.ID != nil {
		fileOpts = append(fileOpts, source.WithID(*in.ID))
	}
	if in.Info != nil {
		fileOpts = append(fileOpts, source.WithInfo(*in.Info))
	}
	f := source.New(in.Path, in.Content, fileOpts...)
	return source.NewTokenized(f, cached.Tokens, cached.Mapping)
}

// Languages lists every language with a registered Tokenizer.
func Languages() []string {
	return tokenize.Default.Languages()
}
