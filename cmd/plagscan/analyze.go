// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	plagiarism "github.com/classforge/plagiarism"
	"github.com/classforge/plagiarism/internal/detectconfig"
	"github.com/classforge/plagiarism/internal/logging"
	"github.com/classforge/plagiarism/internal/source"
	"github.com/classforge/plagiarism/internal/tokenize"
)

var (
	analyzeLanguage      string
	analyzeJSON          bool
	analyzeMinSimilarity float64
	analyzeConfigPath    string
	analyzeLogDir        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir>",
	Short: "Scan a directory of submissions for shared fingerprints",
	Long: `analyze walks a directory tree, reads every file matching the
registered extensions for one language, and prints a similarity report.
The language comes from --language, or from the config when it lists
exactly one language; all matching files are analyzed as a single batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "language to tokenize submissions as (required unless --config supplies one default)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON instead of a table")
	analyzeCmd.Flags().Float64Var(&analyzeMinSimilarity, "min-similarity", 0, "drop pairs below this similarity from the report")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "path to a plagscan.yaml overriding the on-disk defaults")
	analyzeCmd.Flags().StringVar(&analyzeLogDir, "log-dir", "", "additionally write structured JSON logs to this directory (supports ~ expansion)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg := detectconfig.DefaultConfig()
	if analyzeConfigPath != "" {
		loaded, err := detectconfig.LoadFrom(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("plagscan: %w", err)
		}
		cfg = loaded
	} else if err := detectconfig.Load(); err == nil {
		cfg = detectconfig.Global
	}

	language := analyzeLanguage
	if language == "" && len(cfg.Languages) == 1 {
		language = cfg.Languages[0]
	}
	if language == "" {
		return fmt.Errorf("plagscan: --language is required (registered: %s)", strings.Join(plagiarism.Languages(), ", "))
	}

	tokenizer, ok := tokenize.Default.GetByLanguage(language)
	if !ok {
		return fmt.Errorf("plagscan: unsupported language %q (registered: %s)", language, strings.Join(plagiarism.Languages(), ", "))
	}

	inputs, err := collectInputs(dir, tokenizer)
	if err != nil {
		return fmt.Errorf("plagscan: %w", err)
	}

	opts := plagiarism.DefaultOptions(language)
	opts.KgramLength = cfg.Fingerprint.KgramLength
	opts.KgramsInWindow = cfg.Fingerprint.KgramsInWindow
	opts.KgramData = cfg.Fingerprint.KgramData
	opts.IncludeComments = cfg.Fingerprint.IncludeComments
	opts.MaxFingerprintCount = cfg.Boilerplate.MaxFingerprintCount
	opts.MaxFingerprintPercentage = cfg.Boilerplate.MaxFingerprintPercentage
	opts.MinFragmentLength = cfg.Pairing.MinFragmentLength
	opts.MinSimilarity = cfg.Pairing.MinSimilarity
	if cmd.Flags().Changed("min-similarity") {
		opts.MinSimilarity = analyzeMinSimilarity
	}
	opts.CacheCapacity = cfg.Cache.Capacity

	logger := logging.New(logging.Config{
		Level:    logging.LevelInfo,
		LogDir:   analyzeLogDir,
		Service:  "plagscan",
		JSON:     analyzeJSON,
		Exporter: newOtelLogExporter(),
	})
	defer logger.Close()

	r, err := plagiarism.AnalyzeWithLogger(cmd.Context(), inputs, opts, logger)
	if err != nil {
		return fmt.Errorf("plagscan: %w", err)
	}

	if analyzeJSON {
		if err := outputJSON(r); err != nil {
			return fmt.Errorf("plagscan: %w", err)
		}
	} else {
		outputTable(r)
	}

	summary := r.GetSummary()
	if summary.SuspiciousPairs > 0 {
		os.Exit(exitSuspicious)
	}
	return nil
}

// collectInputs walks dir for files whose extension the tokenizer
// handles, reading each into a plagiarism.Input keyed by its path
// relative to dir.
func collectInputs(dir string, tokenizer tokenize.Tokenizer) ([]plagiarism.Input, error) {
	extSet := make(map[string]bool, len(tokenizer.Extensions()))
	for _, ext := range tokenizer.Extensions() {
		extSet[ext] = true
	}

	var inputs []plagiarism.Input
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if !extSet[ext] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		inputs = append(inputs, plagiarism.Input{
			Path:    rel,
			Content: string(content),
			Info:    &source.Info{SubmissionID: rel},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return inputs, nil
}
