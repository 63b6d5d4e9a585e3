// Package metadata stores small key/value records in the client state
// database. The session token lives here.
package metadata

import (
	"context"
	"time"
)

// Record is a stored value together with the time it was last written.
type Record struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Repository is the key/value contract. Get returns (nil, nil) for an absent
// key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Lookup(ctx context.Context, key string) (Record, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Records(ctx context.Context) ([]Record, error)
}
