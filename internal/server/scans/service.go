package scans

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create stores an upload and attaches the placeholder report. imageData is
// kept verbatim so the response echoes what was sent.
func (s *Service) Create(ctx context.Context, userID, scanType, imageData string) (*Scan, error) {
	st, err := models.ParseScanType(scanType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrorValidation, err)
	}
	if strings.TrimSpace(imageData) == "" {
		return nil, fmt.Errorf("%w: image_data is required", shared.ErrorValidation)
	}

	scan := &Scan{
		ID:        uuid.NewString(),
		UserID:    userID,
		ScanType:  string(st),
		ImageData: imageData,
		AIReport:  PlaceholderReport(string(st)),
		CreatedAt: s.now().UTC(),
	}

	scan, err = s.repo.Create(ctx, scan)
	if err != nil {
		return nil, fmt.Errorf("error creating scan: %w", err)
	}
	return scan, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Scan, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Scan, error) {
	return s.repo.Get(ctx, userID, id)
}
