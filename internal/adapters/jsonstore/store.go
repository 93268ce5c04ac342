package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"satchel/internal/domain"
	"satchel/internal/ports"
)

// Store persists the registry as a single JSON file.
type Store struct {
	path string
}

var _ ports.RegistryStore = (*Store)(nil)

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted registry. A missing or corrupt file yields an
// empty state; boot must never fail on load. Absent or malformed fields
// unmarshal to nil slices, which callers treat as empty.
func (s *Store) Load() (*domain.RegistryState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return &domain.RegistryState{}, nil
	}

	var state domain.RegistryState
	if err := json.Unmarshal(data, &state); err != nil {
		return &domain.RegistryState{}, nil
	}

	return &state, nil
}

// Save writes the registry state, creating the data directory if needed.
func (s *Store) Save(state *domain.RegistryState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
