// Package prefs persists per-view filter/sort/pagination selections so
// a screen reopens with the selection it was last used with.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps one JSON blob per view name ("properties", "users", ...)
// in a single file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a preference store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the selection for the named view.
func (s *Store) Save(view string, selection any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	views, err := s.readLocked()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("failed to marshal selection for view %s: %v", view, err)
	}
	views[view] = raw
	return s.writeLocked(views)
}

// Load reads the persisted selection for the named view into dest.
// It reports whether a selection was present.
func (s *Store) Load(view string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views, err := s.readLocked()
	if err != nil {
		return false, err
	}
	raw, ok := views[view]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal selection for view %s: %v", view, err)
	}
	return true, nil
}

// Clear removes the persisted selection for the named view.
func (s *Store) Clear(view string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	views, err := s.readLocked()
	if err != nil {
		return err
	}
	if _, ok := views[view]; !ok {
		return nil
	}
	delete(views, view)
	return s.writeLocked(views)
}

func (s *Store) readLocked() (map[string]json.RawMessage, error) {
	views := map[string]json.RawMessage{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return views, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %v", err)
	}
	if err := json.Unmarshal(data, &views); err != nil {
		// Corrupt preferences are dropped rather than blocking the UI.
		return map[string]json.RawMessage{}, nil
	}
	return views, nil
}

func (s *Store) writeLocked(views map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %v", err)
	}
	data, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %v", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences file: %v", err)
	}
	return nil
}
