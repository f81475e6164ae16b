// Package session owns the client credential pair and the single-flight
// token refresh. Credentials live behind one manager with an explicit
// idle/refreshing gate so that any number of concurrent 401s produce exactly
// one call to the refresh endpoint.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrSessionExpired means the session cannot be recovered locally and the
	// user has to log in again. All stored credentials are gone when a caller
	// sees this error.
	ErrSessionExpired = errors.New("session: expired, login required")
	// ErrNotLoggedIn means no credentials are stored at all.
	ErrNotLoggedIn = errors.New("session: not logged in")
)

// Credentials is the access/refresh token pair issued by the backend.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Store persists credentials and the cached user profile between runs.
// Implemented by the sqlite-backed state store; faked in tests.
type Store interface {
	SaveCredentials(ctx context.Context, creds Credentials) error
	LoadCredentials(ctx context.Context) (Credentials, error)
	SaveProfile(ctx context.Context, profile []byte) error
	LoadProfile(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}

// RefreshFunc exchanges a refresh token for a new credential pair. The
// manager never calls it concurrently for the same session.
type RefreshFunc func(ctx context.Context, refreshToken string) (Credentials, error)

// state of the refresh gate.
type state int

const (
	stateIdle state = iota
	stateRefreshing
)

type refreshResult struct {
	token string
	err   error
}

// Manager holds the in-process credential pair. It is safe for concurrent
// use by any number of in-flight requests.
type Manager struct {
	store   Store
	refresh RefreshFunc
	log     *slog.Logger

	mu      sync.Mutex
	state   state
	creds   Credentials
	waiters []chan refreshResult
}

// Options configures a Manager.
type Options struct {
	Store   Store
	Refresh RefreshFunc
	Logger  *slog.Logger
}

// NewManager builds a manager and loads any persisted credentials.
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session: store is required")
	}
	if opts.Refresh == nil {
		return nil, fmt.Errorf("session: refresh func is required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	creds, err := opts.Store.LoadCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return &Manager{
		store:   opts.Store,
		refresh: opts.Refresh,
		log:     log,
		creds:   creds,
	}, nil
}

// AccessToken returns the current access token, empty when logged out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.AccessToken
}

// LoggedIn reports whether any credentials are held.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds.AccessToken != "" || m.creds.RefreshToken != ""
}

// Establish stores a freshly issued credential pair and cached profile,
// replacing whatever was held before. Called after login and register.
func (m *Manager) Establish(ctx context.Context, creds Credentials, profile []byte) error {
	m.mu.Lock()
	m.creds = creds
	m.mu.Unlock()

	if err := m.store.SaveCredentials(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	if profile != nil {
		if err := m.store.SaveProfile(ctx, profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}
	return nil
}

// UpdateProfile replaces the cached user profile without touching tokens.
func (m *Manager) UpdateProfile(ctx context.Context, profile []byte) error {
	if !m.LoggedIn() {
		return ErrNotLoggedIn
	}
	return m.store.SaveProfile(ctx, profile)
}

// Profile returns the cached user profile bytes, or ErrNotLoggedIn.
func (m *Manager) Profile(ctx context.Context) ([]byte, error) {
	if !m.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return m.store.LoadProfile(ctx)
}

// Logout drops all credentials, in memory and persisted.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.creds = Credentials{}
	m.waiters = nil
	m.mu.Unlock()
	return m.store.Clear(ctx)
}

// RefreshAccessToken recovers from an expired access token. The first caller
// while idle performs the exchange; callers arriving during an in-flight
// refresh wait for that same exchange to settle and observe its result. On
// failure every stored credential is cleared and ErrSessionExpired is
// returned to all callers; the failure is never retried here.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()

	if m.creds.RefreshToken == "" {
		// Nothing to exchange: straight to logged-out, zero refresh calls.
		m.creds = Credentials{}
		m.mu.Unlock()
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn("clear credential store", "error", err)
		}
		return "", ErrSessionExpired
	}

	if m.state == stateRefreshing {
		ch := make(chan refreshResult, 1)
		m.waiters = append(m.waiters, ch)
		m.mu.Unlock()
		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.state = stateRefreshing
	refreshToken := m.creds.RefreshToken
	m.mu.Unlock()

	creds, err := m.refresh(ctx, refreshToken)
	if err != nil {
		m.log.Info("token refresh failed, ending session", "error", err)
		m.settle(refreshResult{err: ErrSessionExpired}, true)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.log.Warn("clear credential store", "error", cerr)
		}
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	m.mu.Lock()
	m.creds.AccessToken = creds.AccessToken
	if creds.RefreshToken != "" {
		m.creds.RefreshToken = creds.RefreshToken
	}
	persisted := m.creds
	m.mu.Unlock()

	if err := m.store.SaveCredentials(ctx, persisted); err != nil {
		m.log.Warn("persist refreshed credentials", "error", err)
	}

	m.settle(refreshResult{token: creds.AccessToken}, false)
	return creds.AccessToken, nil
}

// settle leaves the refreshing state and notifies every waiter with the
// outcome. When clear is set the in-memory credentials are dropped too.
func (m *Manager) settle(res refreshResult, clear bool) {
	m.mu.Lock()
	m.state = stateIdle
	if clear {
		m.creds = Credentials{}
	}
	waiters := m.waiters
	m.waiters = nil
	m.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}
