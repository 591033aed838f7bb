package auth

import (
	"context"
)

// ActorInfo contains information about an authenticated actor
type ActorInfo struct {
	UserID  string `json:"user_id"`  // Owner of the library the key grants access to
	KeyName string `json:"key_name"` // Human-readable name
}

// Authorizer validates API keys and resolves them to an actor in one call
type Authorizer interface {
	// Authorize validates the API key and returns the acting user.
	// Returns ActorInfo if authorized, error if authentication fails.
	Authorize(ctx context.Context, apiKey string) (*ActorInfo, error)
}
