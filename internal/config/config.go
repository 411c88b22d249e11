package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	ProxyConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetLogFile() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Proxy
}

func New() Config {
	return mainConfig{}
}

// Load reads the given .env files into the process environment before
// returning the config. Missing files are skipped and variables that are
// already set are never overridden.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("[config Load] %s: %w", f, err)
		}
	}
	return New(), nil
}
