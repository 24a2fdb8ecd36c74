// Package util holds small helpers for wiring configuration from the
// process environment.
package util

import (
	"os"
	"time"
)

// EnvOrDefault reads an environment variable, falling back when it is unset
// or empty. Used to seed flag defaults so env vars lose to explicit flags.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvDuration is EnvOrDefault for duration-valued settings. Values that do
// not parse as a time.Duration fall back as well.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
