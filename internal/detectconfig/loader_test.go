// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package detectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 23, cfg.Fingerprint.KgramLength)
	require.Equal(t, 17, cfg.Fingerprint.KgramsInWindow)
	require.NotEmpty(t, cfg.Languages)
	require.Equal(t, 4096, cfg.Cache.Capacity)
}

func TestLoadFromRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plagscan.yaml")

	yamlBody := []byte("fingerprint:\n  kgram_length: 30\n  kgrams_in_window: 20\nlanguages:\n  - go\n")
	require.NoError(t, os.WriteFile(path, yamlBody, 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Fingerprint.KgramLength)
	require.Equal(t, 20, cfg.Fingerprint.KgramsInWindow)
	require.Equal(t, []string{"go"}, cfg.Languages)
}

func TestLoadFromMissingFileErrors(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/plagscan.yaml")
	require.Error(t, err)
}
