package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/radiologix/internal/common"
	"github.com/dmitrijs2005/radiologix/internal/dbx"
)

// TokenStore persists the session credential across restarts. Load returns a
// zero credential when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (client.Credential, error)
	Save(ctx context.Context, cred client.Credential) error
	Clear(ctx context.Context) error
	SavedAt(ctx context.Context) (time.Time, error)
}

type sqlTokenStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewTokenStore keeps the token in the metadata table of db.
func NewTokenStore(db *sql.DB) TokenStore {
	return &sqlTokenStore{db: db, now: time.Now}
}

func (s *sqlTokenStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *sqlTokenStore) Load(ctx context.Context) (client.Credential, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return client.Credential{}, fmt.Errorf("load token: %w", err)
	}
	return client.Credential{Token: string(v)}, nil
}

// Save writes the token and its timestamp in one transaction.
func (s *sqlTokenStore) Save(ctx context.Context, cred client.Credential) error {
	savedAt := s.now().UTC().Format(time.RFC3339)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(cred.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtMetadataKey, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *sqlTokenStore) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, common.TokenMetadataKey, common.TokenSavedAtMetadataKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SavedAt returns the zero time when no token is stored.
func (s *sqlTokenStore) SavedAt(ctx context.Context) (time.Time, error) {
	v, err := s.repo(s.db).Get(ctx, common.TokenSavedAtMetadataKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("load token timestamp: %w", err)
	}
	if len(v) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("load token timestamp: %w", err)
	}
	return t, nil
}
