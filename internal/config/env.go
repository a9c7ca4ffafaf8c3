package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide CLI flag defaults.
const (
	EnvDBPath   = "SNAKE_DB"
	EnvConfig   = "SNAKE_CONFIG"
	EnvLogLevel = "SNAKE_LOG_LEVEL"
)

// Env holds flag defaults taken from the environment.
type Env struct {
	DBPath     string
	ConfigPath string
	LogLevel   string
}

// LoadEnv reads a .env file from the working directory when one exists,
// then collects the SNAKE_* variables, falling back to the given defaults.
// A missing .env file is not an error.
func LoadEnv(defaults Env, files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var loadErr error
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			loadErr = err
		}
	}

	return Env{
		DBPath:     getEnv(EnvDBPath, defaults.DBPath),
		ConfigPath: getEnv(EnvConfig, defaults.ConfigPath),
		LogLevel:   getEnv(EnvLogLevel, defaults.LogLevel),
	}, loadErr
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
