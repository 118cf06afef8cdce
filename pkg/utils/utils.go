// Package utils provides small helpers shared across the gateway.
package utils

import (
	"os"
	"strconv"
)

// GetEnvWithDefault retrieves an environment variable or returns a default
// value if not set.
func GetEnvWithDefault(name, defaultValue string) string {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt retrieves an integer environment variable. Unset or unparsable
// values yield the default.
func GetEnvInt(name string, defaultValue int) int {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// MaskToken returns a version of a credential that is safe to log: first and
// last few characters with the middle elided. Tokens too short to elide
// safely are fully masked.
func MaskToken(token string) string {
	if len(token) < 10 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
