// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/java"
)

// JavaTokenizer tokenizes Java source via the tree-sitter Java grammar.
type JavaTokenizer struct {
	Options Options
}

func (t *JavaTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "java", java.GetLanguage(), content, t.Options)
}

func (t *JavaTokenizer) Language() string     { return "java" }
func (t *JavaTokenizer) Extensions() []string { return []string{"java"} }

func (t *JavaTokenizer) WithOptions(opts Options) Tokenizer { return &JavaTokenizer{Options: opts} }

func init() {
	Default.Register(&JavaTokenizer{})
}
