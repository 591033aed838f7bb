package auth

import (
	"context"
	"errors"
)

const (
	// LocalDevAPIKey is the hardcoded API key for local development only
	LocalDevAPIKey = "sk_local_folio_dev_key"
)

// MockAuthorizer provides a simple authorizer for local development and
// handler tests. It only recognizes LocalDevAPIKey.
type MockAuthorizer struct{}

// NewMockAuthorizer creates a new MockAuthorizer for local development
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

// Authorize validates the hardcoded API key
func (m *MockAuthorizer) Authorize(ctx context.Context, apiKey string) (*ActorInfo, error) {
	if apiKey != LocalDevAPIKey {
		return nil, errors.New("invalid API key for local development")
	}
	return &ActorInfo{UserID: "folio-dev", KeyName: "Local Development Key"}, nil
}
