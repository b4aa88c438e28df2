// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// CppTokenizer tokenizes C++ source via the tree-sitter C++ grammar.
type CppTokenizer struct {
	Options Options
}

func (t *CppTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "cpp", cpp.GetLanguage(), content, t.Options)
}

func (t *CppTokenizer) Language() string     { return "cpp" }
func (t *CppTokenizer) Extensions() []string { return []string{"cpp", "cc", "cxx", "hpp", "hh"} }

func (t *CppTokenizer) WithOptions(opts Options) Tokenizer { return &CppTokenizer{Options: opts} }

// CTokenizer tokenizes C source via the tree-sitter C grammar.
type CTokenizer struct {
	Options Options
}

func (t *CTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "c", c.GetLanguage(), content, t.Options)
}

func (t *CTokenizer) Language() string     { return "c" }
func (t *CTokenizer) Extensions() []string { return []string{"c", "h"} }

func (t *CTokenizer) WithOptions(opts Options) Tokenizer { return &CTokenizer{Options: opts} }

func init() {
	Default.Register(&CppTokenizer{})
	Default.Register(&CTokenizer{})
}
