package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/vanshika/routeplanner/internal/domain"
)

// MemoryStore keeps routes in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	edges []domain.Edge
}

// NewMemoryStore returns a store seeded with edges.
func NewMemoryStore(edges ...domain.Edge) *MemoryStore {
	return &MemoryStore{edges: slices.Clone(edges)}
}

func (s *MemoryStore) Append(_ context.Context, edge domain.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, edge)
	return nil
}

func (s *MemoryStore) LoadAll(context.Context) ([]domain.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.edges), nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// Len returns the number of stored routes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}
