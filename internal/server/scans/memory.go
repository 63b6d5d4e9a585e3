package scans

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/radiologix/internal/shared"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Scan
	byUser map[string][]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*Scan),
		byUser: make(map[string][]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, scan *Scan) (*Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[scan.ID]; ok {
		return nil, shared.ErrorAlreadyExists
	}
	s := *scan
	r.byID[s.ID] = &s
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s.ID)

	out := s
	return &out, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	out := make([]*Scan, 0, len(ids))
	for _, id := range ids {
		s := *r.byID[id]
		out = append(out, &s)
	}
	return out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, userID, id string) (*Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return nil, shared.ErrorNotFound
	}
	out := *s
	return &out, nil
}
