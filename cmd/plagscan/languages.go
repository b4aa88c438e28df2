// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/classforge/plagiarism/internal/tokenize"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages with a registered tokenizer",
	RunE: func(cmd *cobra.Command, args []string) error {
		langs := tokenize.Default.Languages()
		sort.Strings(langs)
		for _, lang := range langs {
			t, _ := tokenize.Default.GetByLanguage(lang)
			fmt.Printf("%-12s extensions: %v\n", lang, t.Extensions())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
