// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"

	"github.com/smacker/go-tree-sitter/python"
)

// PythonTokenizer tokenizes Python source via the tree-sitter Python grammar.
type PythonTokenizer struct {
	Options Options
}

func (t *PythonTokenizer) Tokenize(ctx context.Context, content []byte) ([]Token, error) {
	return parseWithGrammar(ctx, "python", python.GetLanguage(), content, t.Options)
}

func (t *PythonTokenizer) Language() string     { return "python" }
func (t *PythonTokenizer) Extensions() []string { return []string{"py"} }

func (t *PythonTokenizer) WithOptions(opts Options) Tokenizer {
	return &PythonTokenizer{Options: opts}
}

func init() {
	Default.Register(&PythonTokenizer{})
}
