package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/shopfront/internal/session"
)

// fakeStore is an in-memory session.Store for client tests.
type fakeStore struct {
	mu      sync.Mutex
	creds   session.Credentials
	profile []byte
}

func (s *fakeStore) SaveCredentials(_ context.Context, creds session.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *fakeStore) LoadCredentials(_ context.Context) (session.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *fakeStore) SaveProfile(_ context.Context, profile []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = append([]byte(nil), profile...)
	return nil
}

func (s *fakeStore) LoadProfile(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *fakeStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = session.Credentials{}
	s.profile = nil
	return nil
}

func (s *fakeStore) snapshot() session.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

func newTestClient(t *testing.T, handler http.Handler, creds session.Credentials) (*Client, *fakeStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &fakeStore{creds: creds}
	client, err := New(context.Background(), Options{
		BaseURL: server.URL,
		Store:   store,
	})
	require.NoError(t, err)
	return client, store
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, ProductPage{})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})
	_, err := client.ListProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestConcurrent401sSingleRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	var mu sync.Mutex
	stale401s := 0
	both401 := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// Settle only after both expired requests came back, and leave the
		// second caller time to queue behind this exchange.
		<-both401
		time.Sleep(100 * time.Millisecond)
		writeJSON(w, http.StatusOK, TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer access-2":
			writeJSON(w, http.StatusOK, OrderPage{Page: 1})
		case "Bearer stale":
			mu.Lock()
			stale401s++
			if stale401s == 2 {
				close(both401)
			}
			mu.Unlock()
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad token"})
		}
	})

	client, store := newTestClient(t, mux, session.Credentials{AccessToken: "stale", RefreshToken: "refresh-1"})

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.ListMyOrders(context.Background(), 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err, "both requests replay successfully with the refreshed token")
	}
	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh call for two concurrent 401s")
	assert.Equal(t, session.Credentials{AccessToken: "access-2", RefreshToken: "refresh-2"}, store.snapshot())
}

func TestReplayed401Propagates(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		// The backend keeps rejecting even the fresh token.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "account disabled"})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "stale", RefreshToken: "refresh-1"})
	_, err := client.ListMyOrders(context.Background(), 0)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err), "second 401 propagates as an API error")
	assert.Equal(t, int32(1), refreshCalls.Load(), "no second refresh cycle for a replayed request")
}

func TestRefreshFailureLogsOut(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "refresh token expired"})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	})

	creds := session.Credentials{AccessToken: "stale", RefreshToken: "refresh-1"}
	client, store := newTestClient(t, mux, creds)

	_, err := client.ListMyOrders(context.Background(), 0)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, session.Credentials{}, store.snapshot(), "credential storage is empty after a failed refresh")
	assert.False(t, client.Session().LoggedIn())
}

func TestMissingRefreshTokenSkipsRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, TokenPair{AccessToken: "access-2"})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "stale"})
	_, err := client.ListMyOrders(context.Background(), 0)

	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.Equal(t, int32(0), refreshCalls.Load(), "no refresh token stored means zero refresh calls")
	assert.False(t, client.Session().LoggedIn())
}

func TestUnauthenticated401IsNotRefreshed(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "login required"})
	})

	// No credentials at all: the 401 is the caller's problem, not a refresh
	// trigger.
	client, _ := newTestClient(t, mux, session.Credentials{})
	_, err := client.ListMyOrders(context.Background(), 0)

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestBackendMessageSurfacesVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "insufficient stock for Apples"})
	})

	client, _ := newTestClient(t, mux, session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"})
	_, err := client.AddToCart(context.Background(), "p1", 3)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "insufficient stock for Apples", apiErr.Message)
	assert.Equal(t, "insufficient stock for Apples", apiErr.UserMessage())
}
