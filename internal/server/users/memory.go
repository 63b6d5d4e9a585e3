package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/radiologix/internal/shared"
)

// InMemoryRepository keeps accounts in process memory. Nothing survives a
// restart.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, shared.ErrorAlreadyExists
	}
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *InMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	out := *u
	return &out, nil
}
