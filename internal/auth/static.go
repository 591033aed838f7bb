package auth

import (
	"context"
	"strings"
)

// StaticAuthorizer resolves API keys from a fixed in-memory table. Keys are
// supplied at boot via configuration as "key=userId" pairs; suitable for
// local and single-tenant deployments.
type StaticAuthorizer struct {
	users map[string]string // apiKey -> userID
}

// NewStaticAuthorizer parses a comma-separated list of "key=userId" pairs.
func NewStaticAuthorizer(pairs string) (*StaticAuthorizer, error) {
	users := make(map[string]string)
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, userID, ok := strings.Cut(pair, "=")
		if !ok || key == "" || userID == "" {
			return nil, ErrInvalidAPIKey
		}
		users[key] = userID
	}
	if len(users) == 0 {
		return nil, ErrNoKeysConfigured
	}
	return &StaticAuthorizer{users: users}, nil
}

// Authorize validates the API key against the static table.
func (a *StaticAuthorizer) Authorize(_ context.Context, apiKey string) (*ActorInfo, error) {
	userID, ok := a.users[apiKey]
	if !ok {
		return nil, ErrInvalidAPIKey
	}
	return &ActorInfo{UserID: userID, KeyName: "static"}, nil
}
