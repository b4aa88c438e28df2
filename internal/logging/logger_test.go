// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelOrdering(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError) {
		t.Error("expected Debug < Info < Warn < Error")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	logger := New(Config{Quiet: true})
	if logger == nil || logger.slog == nil {
		t.Fatal("New() returned an unusable logger")
	}
	defer logger.Close()
}

func TestDefaultUsesPlagscanService(t *testing.T) {
	logger := Default()
	defer logger.Close()
	logger.Info("batch started", "file_count", 3)
	if logger.config.Service != "plagscan" {
		t.Errorf("Service = %q, want %q", logger.config.Service, "plagscan")
	}
}

func TestFileLoggingCreatesFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "plagscan", Quiet: true})
	defer logger.Close()
	logger.Info("hello")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "plagscan_") {
		t.Errorf("log filename = %q, want prefix %q", entries[0].Name(), "plagscan_")
	}
}

func TestExpandPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	got := expandPath("~/.plagscan/logs")
	want := filepath.Join(home, ".plagscan/logs")
	if got != want {
		t.Errorf("expandPath() = %q, want %q", got, want)
	}
}

func TestExpandPathLeavesAbsoluteUnchanged(t *testing.T) {
	if got := expandPath("/var/log/plagscan"); got != "/var/log/plagscan" {
		t.Errorf("expandPath() = %q, want unchanged", got)
	}
}

func TestWithAddsAttributesWithoutMutatingParent(t *testing.T) {
	parent := New(Config{Quiet: true})
	defer parent.Close()
	child := parent.With("file_id", int64(7))
	if child.slog == parent.slog {
		t.Error("With() must return a distinct slog logger")
	}
}

func TestBufferedExporterCollectsEntries(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter, Level: LevelDebug})
	logger.Info("tokenized file", "file_id", int64(1))
	logger.Close()

	// Export runs in its own goroutine; Close only flushes, it doesn't wait
	// for in-flight Export calls, so we only assert the exporter type works
	// standalone via a direct call rather than racing the async path.
	if err := exporter.Export(nil, LogEntry{Message: "direct"}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	entries := exporter.Entries()
	if len(entries) == 0 || entries[len(entries)-1].Message != "direct" {
		t.Errorf("expected buffered entry, got %v", entries)
	}
}

func TestWriterExporterFormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewWriterExporter(&buf)
	if err := exporter.Export(nil, LogEntry{Message: "parse failed", Level: LevelError}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "parse failed") {
		t.Errorf("writer output = %q, want it to contain the message", buf.String())
	}
}

func TestMultiHandlerFansOutToAllDestinations(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "plagscan", Quiet: false, JSON: false})
	defer logger.Close()
	logger.Warn("boilerplate filtered", "fingerprint_count", 4)

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected file logging alongside stderr, ReadDir=%v err=%v", entries, err)
	}
}
