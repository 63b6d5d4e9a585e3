package services

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"

	_ "modernc.org/sqlite"
)

// fakeClient implements client.Client with overridable funcs and call
// counters. Unset funcs fail the test when called.
type fakeClient struct {
	t *testing.T

	login    func(ctx context.Context, email, password string) (client.Credential, error)
	register func(ctx context.Context, name, email, password string) (*models.User, error)
	me       func(ctx context.Context, cred client.Credential) (*models.User, error)
	submit   func(ctx context.Context, cred client.Credential, st models.ScanType, data string) (*models.ScanReport, error)
	list     func(ctx context.Context, cred client.Credential) ([]models.ScanReport, error)
	get      func(ctx context.Context, cred client.Credential, id string) (*models.ScanReport, error)

	loginCalls, registerCalls, meCalls, submitCalls, listCalls, getCalls atomic.Int32
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, email, password string) (client.Credential, error) {
	f.loginCalls.Add(1)
	require.NotNil(f.t, f.login, "unexpected Login")
	return f.login(ctx, email, password)
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	f.registerCalls.Add(1)
	require.NotNil(f.t, f.register, "unexpected Register")
	return f.register(ctx, name, email, password)
}

func (f *fakeClient) Me(ctx context.Context, cred client.Credential) (*models.User, error) {
	f.meCalls.Add(1)
	require.NotNil(f.t, f.me, "unexpected Me")
	return f.me(ctx, cred)
}

func (f *fakeClient) SubmitScan(ctx context.Context, cred client.Credential, st models.ScanType, data string) (*models.ScanReport, error) {
	f.submitCalls.Add(1)
	require.NotNil(f.t, f.submit, "unexpected SubmitScan")
	return f.submit(ctx, cred, st, data)
}

func (f *fakeClient) ListScans(ctx context.Context, cred client.Credential) ([]models.ScanReport, error) {
	f.listCalls.Add(1)
	require.NotNil(f.t, f.list, "unexpected ListScans")
	return f.list(ctx, cred)
}

func (f *fakeClient) GetScan(ctx context.Context, cred client.Credential, id string) (*models.ScanReport, error) {
	f.getCalls.Add(1)
	require.NotNil(f.t, f.get, "unexpected GetScan")
	return f.get(ctx, cred, id)
}

func (f *fakeClient) Health(ctx context.Context) error { return nil }

// memTokens is an in-memory TokenStore with injectable failures.
type memTokens struct {
	mu       sync.Mutex
	cred     client.Credential
	saveErr  error
	clearErr error
	loadErr  error
	clears   int
	// clearCancellable records whether the last Clear got a ctx that can be cancelled.
	clearCancellable bool
}

func (m *memTokens) Load(ctx context.Context) (client.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred, m.loadErr
}

func (m *memTokens) Save(ctx context.Context, cred client.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cred = cred
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.clearCancellable = ctx.Done() != nil
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cred = client.Credential{}
	return nil
}

func (m *memTokens) SavedAt(ctx context.Context) (time.Time, error) { return time.Time{}, nil }

func (m *memTokens) stored() client.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

func openStateDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var ann = &models.User{ID: "u-1", Name: "Ann", Email: "a@b.com"}

func meReturns(u *models.User, want string) func(ctx context.Context, cred client.Credential) (*models.User, error) {
	return func(ctx context.Context, cred client.Credential) (*models.User, error) {
		if cred.Token != want {
			return nil, client.ErrUnauthorized
		}
		c := *u
		return &c, nil
	}
}
