package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-shop-admin/internal/config"
	"github.com/stretchr/testify/require"
)

func TestAPI_GetAPIBaseURL(t *testing.T) {
	t.Run("production default", func(t *testing.T) {
		t.Setenv("API_URL", "")
		t.Setenv("ENV", "")
		require.Equal(t, config.DefaultBaseURL, config.New().GetAPIBaseURL())
	})

	t.Run("override wins and is trimmed", func(t *testing.T) {
		t.Setenv("API_URL", "https://staging.example.com/v2/")
		t.Setenv("ENV", "DEV")
		require.Equal(t, "https://staging.example.com/v2", config.New().GetAPIBaseURL())
	})

	t.Run("dev uses proxy prefix", func(t *testing.T) {
		t.Setenv("API_URL", "")
		t.Setenv("ENV", "dev")
		t.Setenv("DEV_PROXY_ADDR", "8088")
		require.Equal(t, "http://localhost:8088/api", config.New().GetAPIBaseURL())
	})

	t.Run("dev with host and port", func(t *testing.T) {
		t.Setenv("API_URL", "")
		t.Setenv("ENV", "DEV")

		t.Setenv("DEV_PROXY_ADDR", "127.0.0.1:5173")
		require.Equal(t, "http://127.0.0.1:5173/api", config.New().GetAPIBaseURL())

		t.Setenv("DEV_PROXY_ADDR", "0.0.0.0:5173")
		require.Equal(t, "http://localhost:5173/api", config.New().GetAPIBaseURL())

		t.Setenv("DEV_PROXY_ADDR", "[::]:5173")
		require.Equal(t, "http://localhost:5173/api", config.New().GetAPIBaseURL())

		t.Setenv("DEV_PROXY_ADDR", ":5173")
		require.Equal(t, "http://localhost:5173/api", config.New().GetAPIBaseURL())
	})
}

func TestAPI_GetRequestTimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT_MS", "")
	require.Equal(t, 10*time.Second, config.New().GetRequestTimeout())

	t.Setenv("API_TIMEOUT_MS", "250")
	require.Equal(t, 250*time.Millisecond, config.New().GetRequestTimeout())

	t.Setenv("API_TIMEOUT_MS", "nope")
	require.Equal(t, 10*time.Second, config.New().GetRequestTimeout())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_NAME=From Dotenv\n"), 0o600))

	t.Setenv("APP_NAME", "")
	require.NoError(t, os.Unsetenv("APP_NAME"))

	c, err := config.Load(filepath.Join(dir, "missing.env"), envFile)
	require.NoError(t, err)
	require.Equal(t, "From Dotenv", c.GetAppName())
}
