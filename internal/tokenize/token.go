// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tokenize turns source text into a language-agnostic stream of
// AST-shaped tokens via tree-sitter, the way a human grader reads
// structure rather than variable names: a renamed identifier or
// reformatted block still produces the same token stream.
package tokenize

import "github.com/classforge/plagiarism/internal/region"

// Token is one element of a tokenized file: either a paren sentinel
// ("(" / ")") marking the start/end of an AST node, or the node's type
// string (e.g. "function_declaration", "binary_expression").
type Token struct {
	Text     string
	Location region.Region
}

// Options controls what a Tokenizer emits.
type Options struct {
	// IncludeComments, when true, tokenizes nodes whose type contains
	// "comment" instead of skipping them. Default: false.
	IncludeComments bool
}
