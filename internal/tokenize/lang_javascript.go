// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/javascript"
)

// JavaScriptTokenizer tokenizes JavaScript source via the tree-sitter
// JavaScript grammar.
type JavaScriptTokenizer struct {
	Options Options
}

func (t *JavaScriptTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "javascript", javascript.GetLanguage(), content, t.Options)
}

func (t *JavaScriptTokenizer) Language() string     { return "javascript" }
func (t *JavaScriptTokenizer) Extensions() []string { return []string{"js", "jsx", "mjs", "cjs"} }

func (t *JavaScriptTokenizer) WithOptions(opts Options) Tokenizer {
	return &JavaScriptTokenizer{Options: opts}
}

func init() {
	Default.Register(&JavaScriptTokenizer{})
}
