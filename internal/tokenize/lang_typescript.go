// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScriptTokenizer tokenizes plain TypeScript source (".ts") via the
// tree-sitter TypeScript grammar.
type TypeScriptTokenizer struct {
	Options Options
}

func (t *TypeScriptTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "typescript", typescript.GetLanguage(), content, t.Options)
}

func (t *TypeScriptTokenizer) Language() string     { return "typescript" }
func (t *TypeScriptTokenizer) Extensions() []string { return []string{"ts"} }

func (t *TypeScriptTokenizer) WithOptions(opts Options) Tokenizer {
	return &TypeScriptTokenizer{Options: opts}
}

// TSXTokenizer tokenizes TypeScript-with-JSX source (".tsx") via the
// dedicated tree-sitter TSX grammar: the plain TypeScript grammar does
// not parse JSX syntax.
type TSXTokenizer struct {
	Options Options
}

func (t *TSXTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "tsx", tsx.GetLanguage(), content, t.Options)
}

func (t *TSXTokenizer) Language() string     { return "tsx" }
func (t *TSXTokenizer) Extensions() []string { return []string{"tsx"} }

func (t *TSXTokenizer) WithOptions(opts Options) Tokenizer { return &TSXTokenizer{Options: opts} }

func init() {
	Default.Register(&TypeScriptTokenizer{})
	Default.Register(&TSXTokenizer{})
}
