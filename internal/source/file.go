// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package source holds the detector's two source-text types: File, a
// submission's raw content plus derived metadata, and TokenizedFile, a
// File augmented with the token stream a Tokenizer produced from it.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/classforge/plagiarism/internal/region"
)

// nextID is a process-wide monotonic counter backing auto-assigned File
// IDs. Submissions within a single Analyze call get IDs in construction
// order, which is what the pairwise-ordering invariants in fpindex and
// pairing rely on ("leftFile.id < rightFile.id").
var nextID int64

// Info carries optional submission metadata that has no bearing on
// tokenization or scoring but travels with a File into the Report so a
// caller can correlate a flagged pair back to a student or submission.
type Info struct {
	StudentID    string
	StudentName  string
	SubmissionID string
	Labels       []string
}

// File is one source submission: its identity, its content, and the
// metadata derived once from that content.
//
// ID is assigned monotonically at construction unless the caller supplies
// one explicitly via WithID; a caller that mixes explicit and auto IDs is
// responsible for avoiding collisions, since File does not check for
// external IDs sharing its internal counter's range.
type File struct {
	ID        int64
	Path      string
	Content   string
	Info      *Info

	lines     []string
	lineCount int
	charCount int
	extension string
	filename  string
}

// Option customizes File construction.
type Option func(*File)

// WithID overrides the auto-assigned monotonic ID with an explicit value.
func WithID(id int64) Option {
	return func(f *File) { f.ID = id }
}

// WithInfo attaches submission metadata to the File.
func WithInfo(info Info) Option {
	return func(f *File) { f.Info = &info }
}

// New constructs a File from its path and content, computing derived
// metadata (line index, counts, extension, filename) once up front.
func New(path, content string, opts ...Option) *File {
	f := &File{
		ID:      atomic.AddInt64(&nextID, 1),
		Path:    path,
		Content: content,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.lines = splitLines(content)
	f.lineCount = len(f.lines)
	f.charCount = len(content)
	f.extension = strings.TrimPrefix(filepath.Ext(path), ".")
	f.filename = filepath.Base(path)

	return f
}

// NewWithUUIDInfo is a convenience constructor for hosts that want a
// stable external identifier for a submission (e.g. for audit logging)
// distinct from the detector's internal monotonic File.ID. The UUID is
// stored as a label on Info rather than replacing ID, since every
// ordering invariant in the index is defined over the monotonic ID.
func NewWithUUIDInfo(path, content string, info Info, opts ...Option) *File {
	info.Labels = append(info.Labels, "uuid:"+uuid.NewString())
	return New(path, content, append(opts, WithInfo(info))...)
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// Lines returns the file's content split on newlines.
func (f *File) Lines() []string { return f.lines }

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int { return f.lineCount }

// CharCount returns the number of bytes in the file's content.
func (f *File) CharCount() int { return f.charCount }

// Extension returns the file's extension without the leading dot.
func (f *File) Extension() string { return f.extension }

// Filename returns the base name of the file's path.
func (f *File) Filename() string { return f.filename }

func (f *File) String() string {
	return fmt.Sprintf("File{id=%d, path=%q, lines=%d}", f.ID, f.Path, f.lineCount)
}

// TokenizedFile is a File plus the parallel token/region vectors a
// Tokenizer produced from it.
//
// Invariant: len(Tokens) == len(Mapping) always holds; NewTokenized
// panics if constructed otherwise, since every downstream component
// (WinnowFilter, FingerprintIndex) indexes the two vectors in lockstep.
type TokenizedFile struct {
	*File
	Tokens  []string
	Mapping []region.Region
}

// NewTokenized pairs a File with its token stream and per-token regions.
func NewTokenized(f *File, tokens []string, mapping []region.Region) *TokenizedFile {
	if len(tokens) != len(mapping) {
		panic("source: tokens and mapping must have equal length")
	}
	return &TokenizedFile{File: f, Tokens: tokens, Mapping: mapping}
}

// RegionFor merges the per-token regions covering the inclusive token
// index range [start, stop] into a single bounding Region. Panics if the
// range is out of bounds; callers only ever call this with ranges derived
// from the same tokenization.
func (tf *TokenizedFile) RegionFor(start, stop int) region.Region {
	regions := make([]region.Region, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		regions = append(regions, tf.Mapping[i])
	}
	return region.MergeAll(regions)
}
