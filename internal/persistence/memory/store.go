// Package memory implements an in-memory override document store for tests
// and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"clogen/pkg/domain"
)

var _ domain.OverrideStore = (*Store)(nil)

// Store holds the override document in process memory.
type Store struct {
	mu  sync.RWMutex
	doc domain.OverrideDocument
	set bool
}

// NewStore returns an empty in-memory override store.
func NewStore() *Store { return &Store{} }

// Load returns the stored override document, if any.
func (s *Store) Load(_ context.Context) (domain.OverrideDocument, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return domain.OverrideDocument{}, false, nil
	}
	return s.doc.Clone(), true, nil
}

// Save replaces the stored override document.
func (s *Store) Save(_ context.Context, doc domain.OverrideDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.set = true
	return nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }
