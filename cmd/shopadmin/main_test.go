package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu    sync.Mutex
	auths map[string]string
}

func (b *backend) authFor(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auths[path]
}

func newBackend(t *testing.T, token string) *httptest.Server {
	t.Helper()
	b := &backend{auths: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.auths[r.URL.Path] = r.Header.Get("Authorization")
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{"token": token, "refresh_token": "r-1"})
		case "/auth/logout":
			w.WriteHeader(http.StatusNoContent)
		case "/products/category/3":
			if b.authFor(r.URL.Path) != "Bearer "+token {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
				return
			}
			_, _ = w.Write([]byte(`[{"productId":1,"name":"Lamp","price":"19.90","stock":4,"categoryId":3}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginSessionLifecycle(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":   "7",
		"email": "admin@example.com",
		"role":  "admin",
	}).SignedString([]byte("test"))
	require.NoError(t, err)

	srv := newBackend(t, token)
	credsFile := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv("API_URL", srv.URL)
	t.Setenv("CREDENTIALS_FILE", credsFile)
	t.Setenv("CREDENTIALS_PASSPHRASE", "")

	out, err := runCommand(t, "login", "--email", "admin@example.com", "--password", "secret")
	require.NoError(t, err)
	require.Contains(t, out, `"role": "admin"`)
	require.FileExists(t, credsFile)

	// A fresh process picks the credentials up from disk.
	out, err = runCommand(t, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, `"email": "admin@example.com"`)

	out, err = runCommand(t, "products", "list", "--category", "3")
	require.NoError(t, err)
	require.Contains(t, out, `"name": "Lamp"`)

	_, err = runCommand(t, "logout")
	require.NoError(t, err)
	_, statErr := os.Stat(credsFile)
	require.True(t, os.IsNotExist(statErr))

	_, err = runCommand(t, "whoami")
	require.Error(t, err)
}

func TestCommandErrors(t *testing.T) {
	srv := newBackend(t, "unused")
	t.Setenv("API_URL", srv.URL)
	t.Setenv("CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials.json"))

	t.Run("backend message surfaces", func(t *testing.T) {
		_, err := runCommand(t, "products", "get", "99")
		require.Error(t, err)
		require.Contains(t, err.Error(), "404: Not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		_, err := runCommand(t, "orders", "status", "abc", "entregado")
		require.ErrorContains(t, err, "id must be a number")
	})

	t.Run("unknown stock operation", func(t *testing.T) {
		_, err := runCommand(t, "stock", "adjust", "1", "set", "3")
		require.Error(t, err)
	})

	t.Run("refresh without refresh token", func(t *testing.T) {
		_, err := runCommand(t, "refresh")
		require.Error(t, err)
	})
}
