package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/thoughtfolio/backend/internal/api/respond"
	"github.com/thoughtfolio/backend/internal/api/validate"
	"github.com/thoughtfolio/backend/internal/auth"
	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/services"
)

// ThoughtHandler serves thought capture, application, active list and
// discovery endpoints.
type ThoughtHandler struct {
	svc *services.ThoughtService
	az  auth.Authorizer
}

func NewThoughtHandler(svc *services.ThoughtService, az auth.Authorizer) *ThoughtHandler {
	return &ThoughtHandler{svc: svc, az: az}
}

// CreateThought POST /api/thoughts
func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Content   string  `json:"content"`
		ContextID *string `json:"contextId"`
		SourceID  *string `json:"sourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateThought(req.Content); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	t := &model.Thought{UserID: userID, Content: req.Content, ContextID: req.ContextID, SourceID: req.SourceID}
	out, err := h.svc.CreateThought(r.Context(), t)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListThoughts GET /api/thoughts
func (h *ThoughtHandler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	ts, err := h.svc.ListThoughts(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"thoughts": ts, "count": len(ts)})
}

// GetThought GET /api/thoughts/{thoughtId}
func (h *ThoughtHandler) GetThought(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	t, err := h.svc.GetThought(r.Context(), userID, mux.Vars(r)["thoughtId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

// DeleteThought DELETE /api/thoughts/{thoughtId}
func (h *ThoughtHandler) DeleteThought(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.DeleteThought(r.Context(), userID, mux.Vars(r)["thoughtId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyThought POST /api/thoughts/{thoughtId}/apply
func (h *ThoughtHandler) ApplyThought(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	t, err := h.svc.ApplyThought(r.Context(), userID, mux.Vars(r)["thoughtId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

// AddToActiveList POST /api/thoughts/{thoughtId}/activate
func (h *ThoughtHandler) AddToActiveList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.AddToActiveList(r.Context(), userID, mux.Vars(r)["thoughtId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromActiveList DELETE /api/thoughts/{thoughtId}/activate
func (h *ThoughtHandler) RemoveFromActiveList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.RemoveFromActiveList(r.Context(), userID, mux.Vars(r)["thoughtId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActiveList GET /api/active-list
func (h *ThoughtHandler) ActiveList(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	ts, err := h.svc.ActiveList(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"thoughts": ts, "count": len(ts)})
}

// Discover GET /api/thoughts/discover
func (h *ThoughtHandler) Discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	t, err := h.svc.Discover(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}
