// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tokenize

import (
	"context"
	"fmt"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/classforge/plagiarism/internal/region"
)

// DefaultMaxContentSize is the maximum file size a tokenizer accepts.
const DefaultMaxContentSize = 10 * 1024 * 1024

// minOutputBuffer and outputBufferFactor set the capacity hint used when
// preallocating a tokenizer's output token/region slices: max(32KiB,
// 2x content length), so pre-order traversal rarely triggers a slice
// grow-and-copy even on deeply nested files.
const (
	minOutputBuffer    = 32 * 1024
	outputBufferFactor = 2
)

func outputBufferHint(contentLen int) int {
	hint := contentLen * outputBufferFactor
	if hint < minOutputBuffer {
		hint = minOutputBuffer
	}
	return hint
}

// perFileParseBudget bounds a single tree-sitter parse; tokenization of
// one file is treated as atomic and uncancellable mid-parse, so this is
// the only cooperative cancellation point available between files.
const perFileParseBudget = 30 * time.Second

// parseWithGrammar runs content through a fresh tree-sitter parser for
// lang and walks the resulting tree into a token stream.
//
// A new *sitter.Parser is created per call (not reused across
// goroutines): each language tokenizer in this package is stateless and
// safe for concurrent use precisely because it never shares a parser
// instance between calls.
func parseWithGrammar(ctx context.Context, language string, grammar *sitter.Language, content []byte, opts Options) ([]Token, error) {
	if len(content) > DefaultMaxContentSize {
		return nil, &ParseError{Language: language, Err: fmt.Errorf("%w: size %d exceeds limit %d", ErrContentTooLarge, len(content), DefaultMaxContentSize)}
	}

	parseCtx, cancel := context.WithTimeout(ctx, perFileParseBudget)
	defer cancel()

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(parseCtx, nil, content)
	if err != nil {
		return nil, &ParseError{Language: language, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Language: language, Err: fmt.Errorf("tree-sitter returned a nil root node")}
	}

	hint := outputBufferHint(len(content)) / 16 // tokens, not bytes
	tokens := make([]Token, 0, hint)
	walk(root, content, opts, &tokens)
	return tokens, nil
}

// walk performs the pre-order traversal specified for Tokenizer: for
// every named node whose type is not a comment (unless IncludeComments),
// emit an opening paren sentinel at the node's start, the node's type,
// recurse into named children, then a closing paren sentinel at the
// node's (possibly clipped) end.
//
// Region bookkeeping: a parent's reported end is clipped down to the
// start of its earliest child if that start precedes the parent's end,
// guarding against off-by-one coordinates tree-sitter sometimes reports
// for nodes with trailing trivia.
func walk(node *sitter.Node, content []byte, opts Options, out *[]Token) {
	childCount := int(node.NamedChildCount())

	if !opts.IncludeComments && strings.Contains(node.Type(), "comment") {
		return
	}

	startPoint := node.StartPoint()
	endRow, endCol := int(node.EndPoint().Row), int(node.EndPoint().Column)

	if childCount > 0 {
		firstChildStart := node.NamedChild(0).StartPoint()
		if pointBefore(node.EndPoint(), firstChildStart) {
			// node's reported end precedes its own first child's start,
			// an off-by-one tree-sitter sometimes reports for nodes with
			// trailing trivia; clip down rather than emit an invalid
			// region.
			endRow, endCol = int(firstChildStart.Row), int(firstChildStart.Column)
		}
	}

	*out = append(*out, Token{
		Text:     "(",
		Location: region.New(int(startPoint.Row), int(startPoint.Column), int(startPoint.Row), int(startPoint.Column)),
	})
	*out = append(*out, Token{
		Text:     node.Type(),
		Location: region.New(int(startPoint.Row), int(startPoint.Column), endRow, endCol),
	})

	for i := 0; i < childCount; i++ {
		walk(node.NamedChild(i), content, opts, out)
	}

	*out = append(*out, Token{
		Text:     ")",
		Location: region.New(endRow, endCol, endRow, endCol),
	})
}

func pointBefore(a, b sitter.Point) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}
