// Package store provides thread-safe in-memory storage for override maps.
// Overrides are the user-edit layer: raw values keyed by normalized cell
// reference, grouped per sheet. They take precedence over document raw
// values and never carry a formula.
package store

import (
	"sync"

	"github.com/benchwise/sheetcalc/pkg/ref"
	"github.com/benchwise/sheetcalc/pkg/types"
)

// Store holds the override maps for every sheet.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]map[string]types.Value // sheet name -> norm ref -> value
}

// New creates a new empty store.
func New() *Store {
	return &Store{overrides: make(map[string]map[string]types.Value)}
}

// Set records an override for one cell. The reference is normalized before
// use as a key.
func (s *Store) Set(sheetName, cellRef string, v types.Value) error {
	norm, err := ref.Normalize(cellRef)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.overrides[sheetName]
	if !ok {
		m = make(map[string]types.Value)
		s.overrides[sheetName] = m
	}
	m[norm] = v
	return nil
}

// Delete removes a single override.
func (s *Store) Delete(sheetName, cellRef string) error {
	norm, err := ref.Normalize(cellRef)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.overrides[sheetName]; ok {
		delete(m, norm)
	}
	return nil
}

// Clear drops every override for a sheet.
func (s *Store) Clear(sheetName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, sheetName)
}

// Snapshot returns a copy of a sheet's override map. Evaluation sessions
// are built from snapshots, so an in-flight pass never observes later edits.
func (s *Store) Snapshot(sheetName string) map[string]types.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.overrides[sheetName]
	snap := make(map[string]types.Value, len(m))
	for k, v := range m {
		snap[k] = v
	}
	return snap
}

// Len returns the number of overrides stored for a sheet.
func (s *Store) Len(sheetName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overrides[sheetName])
}
