// Package db wires the repositories used by the development backend.
package db

import (
	"github.com/dmitrijs2005/radiologix/internal/server/scans"
	"github.com/dmitrijs2005/radiologix/internal/server/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Scans() scans.Repository
}

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	users users.Repository
	scans scans.Repository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		scans: scans.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Scans() scans.Repository {
	return m.scans
}
