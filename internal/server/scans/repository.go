package scans

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, scan *Scan) (*Scan, error)
	// ListByUser returns the user's scans in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*Scan, error)
	// Get returns shared.ErrorNotFound unless the scan exists and belongs
	// to userID.
	Get(ctx context.Context, userID, id string) (*Scan, error)
}
