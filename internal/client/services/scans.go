package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
)

// SessionInvalidator is a Session that can be cleared when the backend
// rejects its credential.
type SessionInvalidator interface {
	Session
	Invalidate(ctx context.Context, cred client.Credential)
}

// ScanService reads the current user's scan history.
type ScanService struct {
	api     client.Client
	session SessionInvalidator
}

func NewScanService(api client.Client, session SessionInvalidator) *ScanService {
	return &ScanService{api: api, session: session}
}

// List returns the user's reports, newest first.
func (s *ScanService) List(ctx context.Context) ([]models.ScanReport, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	reports, err := s.api.ListScans(ctx, cred)
	if err != nil {
		return nil, s.mapError(ctx, cred, err)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt.Time)
	})
	return reports, nil
}

func (s *ScanService) Get(ctx context.Context, id string) (*models.ScanReport, error) {
	cred, err := s.credential()
	if err != nil {
		return nil, err
	}
	r, err := s.api.GetScan(ctx, cred, id)
	if err != nil {
		return nil, s.mapError(ctx, cred, err)
	}
	return r, nil
}

func (s *ScanService) credential() (client.Credential, error) {
	if s.session.User() == nil {
		return client.Credential{}, ErrNotAuthenticated
	}
	return s.session.Credential(), nil
}

func (s *ScanService) mapError(ctx context.Context, cred client.Credential, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, client.ErrUnauthorized) {
		s.session.Invalidate(ctx, cred)
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return err
}
