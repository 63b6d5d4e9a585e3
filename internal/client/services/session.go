package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/radiologix/internal/client/client"
	"github.com/dmitrijs2005/radiologix/internal/client/models"
	"github.com/dmitrijs2005/radiologix/internal/logging"
)

// SessionSnapshot is a point-in-time copy of the session.
type SessionSnapshot struct {
	Credential     client.Credential
	User           *models.User
	IsLoading      bool
	TokenExpiresAt time.Time
}

// Authenticated reports whether the snapshot carries a validated user.
func (s SessionSnapshot) Authenticated() bool {
	return s.User != nil
}

// SessionStore owns the credential and the user it resolved to.
//
// A user is held only together with the credential that was validated by an
// identity fetch. Login, Register and Refresh are serialized: a second call
// while one runs fails with ErrOperationInProgress. Logout always wins over
// an operation that started before it. The mutex is never held across
// network calls.
type SessionStore struct {
	api    client.Client
	tokens TokenStore
	log    logging.Logger

	mu       sync.Mutex
	cred     client.Credential
	user     *models.User
	loading  bool
	inFlight bool
	// gen changes on every commit and clear; results computed against an
	// older generation are dropped.
	gen uint64

	ready     chan struct{}
	readyOnce sync.Once
}

func NewSessionStore(api client.Client, tokens TokenStore, log logging.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionStore{
		api:     api,
		tokens:  tokens,
		log:     log.With("component", "session"),
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Restore loads the persisted token and validates it with an identity fetch.
// Any failure leaves the session empty and removes the stored token; nothing
// is reported to the caller. A cancelled ctx drops the result but keeps the
// stored token for the next start.
func (s *SessionStore) Restore(ctx context.Context) {
	defer s.finishLoading()

	cred, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading stored token failed", "error", err)
		return
	}
	if cred.IsZero() {
		s.log.Debug(ctx, "no stored token")
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.cred = cred
	s.user = nil
	s.mu.Unlock()

	user, err := s.api.Me(ctx, cred)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if ctx.Err() != nil {
		s.clearLocked()
		return
	}
	if err != nil {
		s.log.Debug(ctx, "stored token rejected", "error", err)
		s.clearLocked()
		if cerr := s.tokens.Clear(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Warn(ctx, "removing stored token failed", "error", cerr)
		}
		return
	}
	s.user = user
	s.log.Info(ctx, "session restored", "user_id", user.ID)
}

// Login submits the credentials, resolves the identity with the new token,
// persists it and only then commits token and user together. On failure the
// previous session is left as it was.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	cred, err := s.api.Login(ctx, email, password)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return mapLoginError(err)
	}

	user, err := s.api.Me(ctx, cred)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("identity fetch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSessionChanged
	}
	// the local write stays under the lock so Logout sees all or nothing
	if err := s.tokens.Save(ctx, cred); err != nil {
		return err
	}
	s.gen++
	s.cred = cred
	s.user = user
	s.log.Info(ctx, "logged in", "user_id", user.ID)
	return nil
}

func mapLoginError(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity):
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	default:
		return fmt.Errorf("login: %w", err)
	}
}

// Register creates an account. It never logs in and never touches the
// current session.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	if _, err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	_, err := s.api.Register(ctx, name, email, password)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	s.log.Info(ctx, "registered", "email", email)
	return nil
}

// Refresh repeats the identity fetch for the current credential. A rejected
// or unreachable identity fetch clears the session like Restore does; a
// rejected one is reported as ErrNotAuthenticated.
func (s *SessionStore) Refresh(ctx context.Context) error {
	gen, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	cred := s.cred
	s.mu.Unlock()
	if cred.IsZero() {
		return ErrNotAuthenticated
	}

	user, err := s.api.Me(ctx, cred)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return ErrSessionChanged
	}
	if err != nil {
		s.clearLocked()
		if cerr := s.tokens.Clear(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Warn(ctx, "removing stored token failed", "error", cerr)
		}
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		}
		return fmt.Errorf("identity fetch: %w", err)
	}
	s.gen++
	s.user = user
	return nil
}

// Invalidate clears the session if it still holds cred. Callers use it when
// the backend rejects a credential outside of the identity fetch.
func (s *SessionStore) Invalidate(ctx context.Context, cred client.Credential) {
	s.mu.Lock()
	if s.cred != cred || cred.IsZero() {
		s.mu.Unlock()
		return
	}
	s.clearLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "session invalidated by backend")
	if err := s.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn(ctx, "removing stored token failed", "error", err)
	}
}

// Logout drops the session in memory first, then removes the stored token.
// The in-memory state is cleared even when the storage delete fails.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	if err := s.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *SessionStore) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{
		Credential:     s.cred,
		User:           copyUser(s.user),
		IsLoading:      s.loading,
		TokenExpiresAt: s.cred.ExpiresAt(),
	}
}

func (s *SessionStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

func (s *SessionStore) Credential() client.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *SessionStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Ready is closed once Restore has finished.
func (s *SessionStore) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until Restore has finished or ctx is done.
func (s *SessionStore) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionStore) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return 0, ErrOperationInProgress
	}
	s.inFlight = true
	return s.gen, nil
}

func (s *SessionStore) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *SessionStore) clearLocked() {
	s.gen++
	s.cred = client.Credential{}
	s.user = nil
}

func (s *SessionStore) finishLoading() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
