package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
)

func TestTokenStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(openStateDB(t)).(*sqlTokenStore)
	store.now = func() time.Time { return time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC) }

	cred, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cred.IsZero())

	require.NoError(t, store.Save(ctx, client.Credential{Token: "abc"}))
	cred, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", cred.Token)

	savedAt, err := store.SavedAt(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC), savedAt)

	require.NoError(t, store.Clear(ctx))
	cred, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cred.IsZero())
	savedAt, err = store.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, savedAt.IsZero())

	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
}

func TestTokenStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/radiologix.db"

	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewTokenStore(db).Save(ctx, client.Credential{Token: "persisted"}))
	require.NoError(t, db.Close())

	db, err = client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	cred, err := NewTokenStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", cred.Token)
}
