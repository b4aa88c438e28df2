// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/golang"
)

// GoTokenizer tokenizes Go source via the tree-sitter Go grammar.
type GoTokenizer struct {
	Options Options
}

func (t *GoTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "go", golang.GetLanguage(), content, t.Options)
}

func (t *GoTokenizer) Language() string     { return "go" }
func (t *GoTokenizer) Extensions() []string { return []string{"go"} }

func (t *GoTokenizer) WithOptions(opts Options) Tokenizer { return &GoTokenizer{Options: opts} }

func init() {
	Default.Register(&GoTokenizer{})
}
