package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/shopfront/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	creds := session.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, s.SaveCredentials(ctx, creds))
	require.NoError(t, s.SaveProfile(ctx, []byte(`{"email":"a@b.c"}`)))

	loaded, err := s.LoadCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded)

	profile, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(profile))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyAccessToken, KeyRefreshToken, KeyUserProfile}, keys)
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	creds, err := s.LoadCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Credentials{}, creds)

	profile, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestClearRemovesAllKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCredentials(ctx, session.Credentials{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, s.SaveProfile(ctx, []byte(`{}`)))

	require.NoError(t, s.Clear(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = s.Get(ctx, KeyAccessToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, "first"))
	require.NoError(t, s.Set(ctx, KeyAccessToken, "second"))

	value, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestReopenKeepsState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveCredentials(ctx, session.Credentials{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	creds, err := s.LoadCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r", creds.RefreshToken)
}
