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

// LibraryHandler serves context and source endpoints.
type LibraryHandler struct {
	svc *services.LibraryService
	az  auth.Authorizer
}

func NewLibraryHandler(svc *services.LibraryService, az auth.Authorizer) *LibraryHandler {
	return &LibraryHandler{svc: svc, az: az}
}

// CreateContext POST /api/contexts
func (h *LibraryHandler) CreateContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateContext(req.Name, req.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	c := &model.Context{UserID: userID, Name: req.Name, Description: req.Description}
	out, err := h.svc.CreateContext(r.Context(), c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListContexts GET /api/contexts
func (h *LibraryHandler) ListContexts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	cs, err := h.svc.ListContexts(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"contexts": cs, "count": len(cs)})
}

// GetContext GET /api/contexts/{contextId}
func (h *LibraryHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	c, err := h.svc.GetContext(r.Context(), userID, mux.Vars(r)["contextId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, c)
}

// DeleteContext DELETE /api/contexts/{contextId}
func (h *LibraryHandler) DeleteContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.DeleteContext(r.Context(), userID, mux.Vars(r)["contextId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateSource POST /api/sources
func (h *LibraryHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Kind   string  `json:"kind"`
		Title  string  `json:"title"`
		Author *string `json:"author"`
		URL    *string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateSource(req.Kind, req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	s := &model.Source{UserID: userID, Kind: req.Kind, Title: req.Title, Author: req.Author, URL: req.URL}
	out, err := h.svc.CreateSource(r.Context(), s)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListSources GET /api/sources
func (h *LibraryHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	ss, err := h.svc.ListSources(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"sources": ss, "count": len(ss)})
}

// GetSource GET /api/sources/{sourceId}
func (h *LibraryHandler) GetSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	s, err := h.svc.GetSource(r.Context(), userID, mux.Vars(r)["sourceId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, s)
}

// DeleteSource DELETE /api/sources/{sourceId}
func (h *LibraryHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.DeleteSource(r.Context(), userID, mux.Vars(r)["sourceId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
