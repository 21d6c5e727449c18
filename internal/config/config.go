// Package config provides configuration for the go-hirez demo binary
package config

import (
	"os"
	"time"
)

// Config holds the credentials and defaults the demo binary runs with
type Config struct {
	DevID    string
	AuthKey  string
	Endpoint string
	Language string
	Timeout  time.Duration
}

// Load loads configuration from environment with defaults
func Load() *Config {
	return &Config{
		DevID:    getEnv("HIREZ_DEV_ID", ""),
		AuthKey:  getEnv("HIREZ_AUTH_KEY", ""),
		Endpoint: getEnv("HIREZ_ENDPOINT", "smitepc"),
		Language: getEnv("HIREZ_LANGUAGE", "english"),
		Timeout:  getDuration("HIREZ_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
