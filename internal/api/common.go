package api

import (
	"errors"
	"net/http"

	respond "github.com/thoughtfolio/backend/internal/api/respond"
	"github.com/thoughtfolio/backend/internal/auth"
	"github.com/thoughtfolio/backend/internal/model"
)

// authorizedUser resolves the request's API key to a user. On failure it
// writes a 401 and returns ok=false.
func authorizedUser(w http.ResponseWriter, r *http.Request, az auth.Authorizer) (string, bool) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return "", false
	}
	actor, err := az.Authorize(r.Context(), apiKey)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return "", false
	}
	return actor.UserID, true
}

// writeStoreError maps model sentinel errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
