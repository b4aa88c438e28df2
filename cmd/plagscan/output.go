// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/classforge/plagiarism/internal/report"
)

// Exit codes for the analyze subcommand.
const (
	exitSuccess    = 0
	exitSuspicious = 1 // at least one pair crossed the suspicious threshold
	exitError      = 2
)

// outputJSON writes the report as JSON to stdout.
func outputJSON(r *report.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// outputTable writes a human-readable summary and pair table to stdout.
func outputTable(r *report.Report) {
	summary := r.GetSummary()
	fmt.Printf("analyzed %d files as %s: %d pairs, %d suspicious, avg similarity %.3f, max %.3f\n",
		summary.TotalFiles, summary.Language, summary.TotalPairs, summary.SuspiciousPairs,
		summary.AverageSimilarity, summary.MaxSimilarity)

	for _, w := range summary.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	pairs := r.GetPairs()
	if len(pairs) == 0 {
		fmt.Println("no candidate pairs found")
		return
	}

	fmt.Printf("%-10s %-10s %-12s %-8s %-8s\n", "leftFile", "rightFile", "similarity", "overlap", "longest")
	for _, p := range pairs {
		fmt.Printf("%-10d %-10d %-12.3f %-8d %-8d\n", p.LeftFileID, p.RightFileID, p.Similarity(), p.Overlap(), p.Longest())
	}
}
