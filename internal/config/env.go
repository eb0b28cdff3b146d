package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that seed CLI flag defaults.
const (
	EnvDB        = "RUNNER_DB"
	EnvConfig    = "RUNNER_CONFIG"
	EnvRedisAddr = "RUNNER_REDIS_ADDR"
	EnvStore     = "RUNNER_STORE"
	EnvLogLevel  = "RUNNER_LOG_LEVEL"
)

// Env holds the values read from the process environment.
type Env struct {
	DB        string
	Config    string
	RedisAddr string
	Store     string
	LogLevel  string
}

// LoadEnv loads variables from the given .env files (default ".env") into the
// process environment and returns the runner's settings. Already exported
// variables win over file values. A missing file is not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return readEnv(), err
		}
	}
	return readEnv(), nil
}

func readEnv() Env {
	return Env{
		DB:        os.Getenv(EnvDB),
		Config:    os.Getenv(EnvConfig),
		RedisAddr: os.Getenv(EnvRedisAddr),
		Store:     os.Getenv(EnvStore),
		LogLevel:  os.Getenv(EnvLogLevel),
	}
}

// Or returns v, or fallback when v is empty.
func Or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
