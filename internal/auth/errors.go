package auth

import "errors"

var (
	// ErrInvalidAPIKey is returned when the presented key resolves to no user
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrNoKeysConfigured is returned when the service starts with an empty key table
	ErrNoKeysConfigured = errors.New("no API keys configured")
)
