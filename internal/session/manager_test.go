package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu      sync.Mutex
	creds   Credentials
	profile []byte
}

func (s *memStore) SaveCredentials(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *memStore) LoadCredentials(_ context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *memStore) SaveProfile(_ context.Context, profile []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = append([]byte(nil), profile...)
	return nil
}

func (s *memStore) LoadProfile(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.profile = nil
	return nil
}

func newTestManager(t *testing.T, store *memStore, refresh RefreshFunc) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), Options{Store: store, Refresh: refresh})
	require.NoError(t, err)
	return m
}

func TestRefreshSingleFlight(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	refresh := func(ctx context.Context, refreshToken string) (Credentials, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return Credentials{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
	}

	store := &memStore{creds: Credentials{AccessToken: "stale", RefreshToken: "refresh-1"}}
	m := newTestManager(t, store, refresh)

	const n = 8
	results := make(chan string, n)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := m.RefreshAccessToken(context.Background())
			results <- token
			errs <- err
		}()
	}

	<-started
	// Give the remaining callers time to queue behind the in-flight refresh.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)
	close(errs)

	assert.Equal(t, int32(1), calls.Load(), "exactly one refresh call for concurrent 401s")
	for err := range errs {
		require.NoError(t, err)
	}
	for token := range results {
		assert.Equal(t, "new-access", token, "every waiter observes the same new token")
	}
	assert.Equal(t, "new-access", m.AccessToken())

	creds, err := store.LoadCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessToken: "new-access", RefreshToken: "new-refresh"}, creds)
}

func TestRefreshFailureEndsSession(t *testing.T) {
	var calls atomic.Int32
	refresh := func(ctx context.Context, refreshToken string) (Credentials, error) {
		calls.Add(1)
		return Credentials{}, errors.New("backend says no")
	}

	store := &memStore{
		creds:   Credentials{AccessToken: "stale", RefreshToken: "refresh-1"},
		profile: []byte(`{"email":"a@b.c"}`),
	}
	m := newTestManager(t, store, refresh)

	const n = 4
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.RefreshAccessToken(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired)
	}
	// Callers either queued behind the failed exchange or found the cleared
	// credentials afterwards; no second exchange is attempted either way.
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, m.LoggedIn())

	creds, err := store.LoadCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, creds, "credential storage is empty after a failed refresh")
	profile, err := store.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile, "cached profile is cleared with the tokens")
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	var calls atomic.Int32
	refresh := func(ctx context.Context, refreshToken string) (Credentials, error) {
		calls.Add(1)
		return Credentials{AccessToken: "nope"}, nil
	}

	store := &memStore{creds: Credentials{AccessToken: "stale"}}
	m := newTestManager(t, store, refresh)

	_, err := m.RefreshAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), calls.Load(), "no refresh token means zero refresh calls")
	assert.False(t, m.LoggedIn())
}

func TestRefreshKeepsOldRefreshTokenWhenNoneIssued(t *testing.T) {
	refresh := func(ctx context.Context, refreshToken string) (Credentials, error) {
		return Credentials{AccessToken: "new-access"}, nil
	}

	store := &memStore{creds: Credentials{AccessToken: "stale", RefreshToken: "refresh-1"}}
	m := newTestManager(t, store, refresh)

	token, err := m.RefreshAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", token)

	creds, err := store.LoadCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
}

func TestWaiterContextCancellation(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	refresh := func(ctx context.Context, refreshToken string) (Credentials, error) {
		close(started)
		<-release
		return Credentials{AccessToken: "new-access"}, nil
	}

	store := &memStore{creds: Credentials{AccessToken: "stale", RefreshToken: "refresh-1"}}
	m := newTestManager(t, store, refresh)

	go m.RefreshAccessToken(context.Background())
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.RefreshAccessToken(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestEstablishAndLogout(t *testing.T) {
	store := &memStore{}
	m := newTestManager(t, store, func(ctx context.Context, rt string) (Credentials, error) {
		return Credentials{}, errors.New("unused")
	})

	require.False(t, m.LoggedIn())
	_, err := m.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	creds := Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, m.Establish(context.Background(), creds, []byte(`{"email":"a@b.c"}`)))
	assert.True(t, m.LoggedIn())
	assert.Equal(t, "access-1", m.AccessToken())

	profile, err := m.Profile(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(profile))

	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, m.LoggedIn())
	assert.Empty(t, m.AccessToken())
}

func TestInspectToken(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	store := &memStore{creds: Credentials{AccessToken: signed, RefreshToken: "refresh-1"}}
	m := newTestManager(t, store, func(ctx context.Context, rt string) (Credentials, error) {
		return Credentials{}, errors.New("unused")
	})

	info, err := m.InspectToken()
	require.NoError(t, err)
	assert.Equal(t, "user-42", info.Subject)
	assert.Equal(t, now.Add(15*time.Minute).Unix(), info.ExpiresAt.Unix())
	assert.False(t, info.Expired(now))
	assert.True(t, info.Expired(now.Add(16*time.Minute)))
}
