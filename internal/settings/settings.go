// Package settings persists the relocation preferences as a small JSON
// document. Values are immutable: Load and Current return copies, and every
// change replaces the whole value and is written through immediately, so a
// settings handler and a running command never share mutable state.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds the user-tunable relocation preferences.
type Settings struct {
	// ExcludeString is a case-insensitive substring; files whose vault path
	// or name contains it are never relocated. Empty means no exclusion.
	ExcludeString string `json:"excludeString"`
}

// Default returns the baseline settings value.
func Default() Settings {
	return Settings{ExcludeString: ""}
}

// Store loads and persists Settings at a fixed file path. The value is read
// lazily on first access and cached; Save writes through to disk.
type Store struct {
	path string

	mu     sync.Mutex
	cur    Settings
	loaded bool
}

// NewStore creates a store backed by the file at path. The file need not
// exist yet; missing state loads as defaults.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted settings merged over defaults: keys present in
// the file win, absent keys keep their default. A missing file is not an
// error. The result is cached for Current.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cur, nil
	}

	merged := Default()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("settings: read %s: %w", s.path, err)
		}
	} else if err := json.Unmarshal(data, &merged); err != nil {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", s.path, err)
	}

	s.cur = merged
	s.loaded = true
	return merged, nil
}

// Save persists the full settings value and replaces the cached copy.
// Any string is a valid exclusion, including empty.
func (s *Store) Save(v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}

	s.cur = v
	s.loaded = true
	return nil
}

// Current returns the cached settings, loading them on first use.
func (s *Store) Current() (Settings, error) {
	s.mu.Lock()
	loaded := s.loaded
	cur := s.cur
	s.mu.Unlock()
	if loaded {
		return cur, nil
	}
	return s.Load()
}
