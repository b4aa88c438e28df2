// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package plagiarism

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned when Options.Language names no
// registered tokenizer. Fatal: no file is processed.
var ErrUnsupportedLanguage = errors.New("plagiarism: unsupported language")

// ErrInsufficientFiles is returned when fewer than two files survive
// tokenization. Fatal: no Report is produced.
var ErrInsufficientFiles = errors.New("plagiarism: fewer than two files survived tokenization")

// InsufficientFilesError carries the counts behind ErrInsufficientFiles
// so a caller can report them without re-deriving from warnings.
type InsufficientFilesError struct {
	Required int
	Got      int
}

func (e *InsufficientFilesError) Error() string {
	return fmt.Sprintf("plagiarism: required at least %d parseable files, got %d", e.Required, e.Got)
}

func (e *InsufficientFilesError) Unwrap() error { return ErrInsufficientFiles }

// InvariantViolation signals an internal consistency failure (token/
// mapping length mismatch, fragment monotonicity failure, etc.) rather
// than a user error. Tests assert this never fires on valid input; a
// host encountering it has found a bug in this package, not a malformed
// submission.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "plagiarism: invariant violation: " + e.Detail
}
