// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package detectconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Global is the process-wide singleton populated by Load, for hosts (the
// cmd/plagscan CLI) that want ambient defaults without threading a Config
// through every call. Library callers of plagiarism.Analyze are never
// required to touch this — Options can always be constructed directly.
var (
	Global Config
	once   sync.Once
)

// Load ensures Global is populated, reading (or creating) the on-disk
// config exactly once per process.
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
	})
	return err
}

func loadInternal() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("detectconfig: could not find the user's home directory: %w", err)
	}
	configPath := filepath.Join(home, ".plagscan", "plagscan.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefault(configPath); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("detectconfig: failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("detectconfig: failed to parse config into Global: %w", err)
	}
	return nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("detectconfig: failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFrom reads a Config from an explicit path, bypassing the Global
// singleton. Used by the CLI's --config flag.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("detectconfig: failed to read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("detectconfig: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
