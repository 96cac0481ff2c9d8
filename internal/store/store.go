// Package store persists serialized grid layouts as JSON files.
// Layout: ~/.devgrid/layouts/<name>.json
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"devgrid/internal/grid"
	"devgrid/internal/jsonutil"
)

const (
	// LayoutsDirEnv is the env var override for the layouts directory (for testing).
	LayoutsDirEnv = "DEVGRID_LAYOUTS_DIR"
	// DefaultLayoutsBase is the default layouts directory under the user's home.
	DefaultLayoutsBase = ".devgrid/layouts"

	ext = ".json"
)

var (
	ErrNotFound    = errors.New("layout not found")
	ErrInvalidName = errors.New("invalid layout name")
)

// Store reads and writes named layouts in one directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at dir. An empty dir falls back to
// DEVGRID_LAYOUTS_DIR, then to the user's home + DefaultLayoutsBase.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(LayoutsDirEnv)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, DefaultLayoutsBase)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the directory layouts are stored in.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Path returns the file a layout is stored in. Names are normalized:
// lowercase, spaces replaced with hyphens.
func (s *Store) Path(name string) (string, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	if normalized == "" || normalized == "." || normalized == ".." ||
		strings.ContainsAny(normalized, `/\`) {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return filepath.Join(s.baseDir, normalized+ext), nil
}

// Save writes state under name, replacing any previous layout atomically.
func (s *Store) Save(name string, state grid.State) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := jsonutil.MarshalIndentWithContext(state, "encode layout "+name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("create layouts dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.baseDir, ".layout-*")
	if err != nil {
		return fmt.Errorf("save layout %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save layout %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save layout %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save layout %s: %w", name, err)
	}
	return nil
}

// Load reads the layout stored under name.
func (s *Store) Load(name string) (grid.State, error) {
	path, err := s.Path(name)
	if err != nil {
		return grid.State{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return grid.State{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return grid.State{}, fmt.Errorf("load layout %s: %w", name, err)
	}
	var state grid.State
	if err := jsonutil.UnmarshalStrict(data, &state, "decode layout "+name); err != nil {
		return grid.State{}, err
	}
	return state, nil
}

// List returns the stored layout names, sorted. A missing directory is empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the layout stored under name.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("delete layout %s: %w", name, err)
	}
	return nil
}
