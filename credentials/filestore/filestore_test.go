package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-shop-admin/credentials"
	"github.com/jrsteele09/go-shop-admin/credentials/filestore"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	record := credentials.Record{AuthToken: "T", RefreshToken: "R", User: `{"id":"1"}`}

	t.Run("missing file loads empty", func(t *testing.T) {
		f := filestore.New(filepath.Join(t.TempDir(), "none.json"))
		got, err := f.Load()
		require.NoError(t, err)
		require.True(t, got.IsZero())
	})

	t.Run("plaintext round trip uses fixed keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "credentials.json")
		f := filestore.New(path)
		require.NoError(t, f.Save(record))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"auth_token":"T"`)
		require.Contains(t, string(data), `"refresh_token":"R"`)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		got, err := filestore.New(path).Load()
		require.NoError(t, err)
		require.Equal(t, record, got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		f := filestore.New(path)
		require.NoError(t, f.Save(record))
		require.NoError(t, f.Delete())
		require.NoError(t, f.Delete())
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
		_, err := filestore.New(path).Load()
		require.Error(t, err)
	})
}

func TestFileStore_Encrypted(t *testing.T) {
	record := credentials.Record{AuthToken: "secret-token"}
	path := filepath.Join(t.TempDir(), "credentials.json")

	require.NoError(t, filestore.New(path, filestore.WithPassphrase("hunter2")).Save(record))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret-token")

	t.Run("right passphrase", func(t *testing.T) {
		got, err := filestore.New(path, filestore.WithPassphrase("hunter2")).Load()
		require.NoError(t, err)
		require.Equal(t, record, got)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := filestore.New(path, filestore.WithPassphrase("nope")).Load()
		require.ErrorIs(t, err, filestore.ErrWrongPassphrase)
	})

	t.Run("no passphrase", func(t *testing.T) {
		_, err := filestore.New(path).Load()
		require.ErrorIs(t, err, filestore.ErrPassphraseNeeded)
	})

	t.Run("plaintext file is accepted then sealed", func(t *testing.T) {
		plainPath := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, filestore.New(plainPath).Save(record))

		f := filestore.New(plainPath, filestore.WithPassphrase("hunter2"))
		got, err := f.Load()
		require.NoError(t, err)
		require.Equal(t, record, got)

		require.NoError(t, f.Save(got))
		data, err := os.ReadFile(plainPath)
		require.NoError(t, err)
		require.NotContains(t, string(data), "secret-token")
	})
}

func TestFileStore_BacksStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s := credentials.NewStore(filestore.New(path))
	s.SetToken("T1")
	s.SetToken("T2")

	reloaded := credentials.NewStore(filestore.New(path))
	token, ok := reloaded.GetToken()
	require.True(t, ok)
	require.Equal(t, "T2", token)

	reloaded.ClearToken()
	require.False(t, credentials.NewStore(filestore.New(path)).IsAuthenticated())
}
