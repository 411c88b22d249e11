package credentials_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-shop-admin/credentials"
	"github.com/jrsteele09/go-shop-admin/credentials/repofake"
	"github.com/jrsteele09/go-shop-admin/sessions"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, p credentials.Persister) *credentials.Store {
	t.Helper()
	return credentials.NewStore(p, credentials.WithLogger(zerolog.Nop()))
}

func TestStore_TokenLifecycle(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := newStore(t, repofake.NewFakePersister())
		token, ok := s.GetToken()
		require.False(t, ok)
		require.Empty(t, token)
		require.False(t, s.IsAuthenticated())
	})

	t.Run("last write wins", func(t *testing.T) {
		s := newStore(t, repofake.NewFakePersister())
		s.SetToken("T1")
		s.SetToken("T2")
		token, ok := s.GetToken()
		require.True(t, ok)
		require.Equal(t, "T2", token)
		require.True(t, s.IsAuthenticated())
	})

	t.Run("clear removes everything", func(t *testing.T) {
		p := repofake.NewFakePersister()
		s := newStore(t, p)
		s.SetCredentials("T", "R", &sessions.Snapshot{ID: "1", Role: "admin"})

		s.ClearToken()

		require.False(t, s.IsAuthenticated())
		_, ok := s.GetRefreshToken()
		require.False(t, ok)
		_, ok = s.Session()
		require.False(t, ok)
		_, exists := p.Stored()
		require.False(t, exists)
	})

	t.Run("clear when signed out", func(t *testing.T) {
		s := newStore(t, repofake.NewFakePersister())
		s.ClearToken()
		s.ClearToken()
		require.False(t, s.IsAuthenticated())
	})

	t.Run("memory only store", func(t *testing.T) {
		s := newStore(t, nil)
		s.SetToken("T")
		require.True(t, s.IsAuthenticated())
		s.ClearToken()
		require.False(t, s.IsAuthenticated())
	})
}

func TestStore_Persistence(t *testing.T) {
	t.Run("loads on init", func(t *testing.T) {
		snap := &sessions.Snapshot{ID: "7", Email: "a@b.c", Name: "a", Role: "admin"}
		p := repofake.NewFakePersisterWith(credentials.Record{
			AuthToken:    "persisted",
			RefreshToken: "refresh",
			User:         snap.Marshal(),
		})
		s := newStore(t, p)

		token, ok := s.GetToken()
		require.True(t, ok)
		require.Equal(t, "persisted", token)
		refresh, ok := s.GetRefreshToken()
		require.True(t, ok)
		require.Equal(t, "refresh", refresh)
		got, ok := s.Session()
		require.True(t, ok)
		require.Equal(t, snap, got)
	})

	t.Run("writes through", func(t *testing.T) {
		p := repofake.NewFakePersister()
		s := newStore(t, p)
		s.SetToken("T")
		s.SetRefreshToken("R")

		stored, exists := p.Stored()
		require.True(t, exists)
		require.Equal(t, credentials.Record{AuthToken: "T", RefreshToken: "R"}, stored)
	})

	t.Run("set credentials keeps refresh token when none issued", func(t *testing.T) {
		p := repofake.NewFakePersister()
		s := newStore(t, p)
		s.SetCredentials("T1", "R1", nil)
		s.SetCredentials("T2", "", nil)

		stored, _ := p.Stored()
		require.Equal(t, "T2", stored.AuthToken)
		require.Equal(t, "R1", stored.RefreshToken)
	})

	t.Run("load failure starts signed out", func(t *testing.T) {
		p := repofake.NewFakePersister()
		p.LoadErr = errors.New("disk on fire")
		s := newStore(t, p)
		require.False(t, s.IsAuthenticated())
	})

	t.Run("save failure keeps memory state", func(t *testing.T) {
		p := repofake.NewFakePersister()
		p.SaveErr = errors.New("read-only")
		s := newStore(t, p)
		s.SetToken("T")
		require.True(t, s.IsAuthenticated())
		require.Equal(t, 1, p.Saves())
	})

	t.Run("delete failure still signs out", func(t *testing.T) {
		p := repofake.NewFakePersisterWith(credentials.Record{AuthToken: "T"})
		p.DeleteErr = errors.New("busy")
		s := newStore(t, p)
		s.ClearToken()
		require.False(t, s.IsAuthenticated())
		require.Equal(t, 1, p.Deletes())
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newStore(t, repofake.NewFakePersister())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetToken("T")
		}()
		go func() {
			defer wg.Done()
			if token, ok := s.GetToken(); ok {
				assert.Equal(t, "T", token)
			}
		}()
	}
	wg.Wait()
	require.True(t, s.IsAuthenticated())
}

func TestStore_TokenSource(t *testing.T) {
	s := newStore(t, nil)
	ts := s.TokenSource()

	_, err := ts.Token()
	require.ErrorIs(t, err, credentials.ErrNoToken)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	s.SetToken(raw)

	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, raw, tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
	require.True(t, exp.Equal(tok.Expiry))

	s.SetToken("opaque")
	tok, err = ts.Token()
	require.NoError(t, err)
	require.Equal(t, "opaque", tok.AccessToken)
	require.True(t, tok.Expiry.IsZero())
}
