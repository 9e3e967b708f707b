// internal/prefs/prefs.go

// Package prefs persists the local client state that lives outside the
// shared store: the display name used as the actor attribution on every
// mutation, and the light/dark presentation preference. Both survive
// restarts and are keyed by fixed names in one JSON file.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Preferences struct {
	UserName string `json:"userName"`
	Theme    string `json:"theme"`
}

type Store struct {
	path string
}

// DefaultPath places the prefs file under the platform config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "inventoryctl", "prefs.json"), nil
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored preferences. A missing file yields empty
// preferences, not an error: the first run has no name set yet.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Preferences{Theme: ThemeLight}, nil
		}
		return Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if p.Theme == "" {
		p.Theme = ThemeLight
	}
	return p, nil
}

// Save writes the preferences atomically (write-then-rename) so an
// interrupted save never corrupts the file.
func (s *Store) Save(p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}
