package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Edit is one staged key/value pair.
type Edit struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// StagedEdits is the Staged Edit Catalog. A single handle is shared by every
// component that stages edits; entries only grow or get overwritten.
type StagedEdits struct {
	mu     sync.RWMutex
	values map[string]Value
}

// NewStagedEdits returns an empty catalog.
func NewStagedEdits() *StagedEdits {
	return &StagedEdits{values: make(map[string]Value)}
}

// Set inserts or overwrites the edit for key.
func (s *StagedEdits) Set(key string, value Value) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("staged edit key must not be empty")
	}
	if !value.IsValid() {
		return errors.New("staged edit value must be a bool, number, or string")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Get returns the staged value for key.
func (s *StagedEdits) Get(key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of staged keys.
func (s *StagedEdits) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Edits returns a snapshot of all staged edits ordered by key.
func (s *StagedEdits) Edits() []Edit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edits := make([]Edit, 0, len(s.values))
	for key, value := range s.values {
		edits = append(edits, Edit{Key: key, Value: value})
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Key < edits[j].Key })
	return edits
}
