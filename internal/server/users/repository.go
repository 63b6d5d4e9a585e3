package users

import (
	"context"
)

// Repository stores accounts. Emails are unique; Create fails with
// shared.ErrorAlreadyExists on a duplicate and lookups with
// shared.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}
