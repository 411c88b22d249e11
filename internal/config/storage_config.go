package config

import (
	"os"
	"path/filepath"
)

const (
	credentialsFileVar       = "CREDENTIALS_FILE"
	credentialsPassphraseVar = "CREDENTIALS_PASSPHRASE"
)

type StorageConfig interface {
	GetCredentialsFile() string
	GetCredentialsPassphrase() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetCredentialsFile() string {
	if f := GetEnv(credentialsFileVar, ""); f != "" {
		return f
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shopadmin", "credentials.json")
}

// GetCredentialsPassphrase enables at-rest encryption of the credentials file when non-empty.
func (Storage) GetCredentialsPassphrase() string {
	return GetEnv(credentialsPassphraseVar, "")
}
