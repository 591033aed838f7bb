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

// NoteHandler serves note endpoints.
type NoteHandler struct {
	svc *services.NoteService
	az  auth.Authorizer
}

func NewNoteHandler(svc *services.NoteService, az auth.Authorizer) *NoteHandler {
	return &NoteHandler{svc: svc, az: az}
}

// CreateNote POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Title    string  `json:"title"`
		Body     string  `json:"body"`
		SourceID *string `json:"sourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateNote(req.Title, req.Body); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	n := &model.Note{UserID: userID, Title: req.Title, Body: req.Body, SourceID: req.SourceID}
	out, err := h.svc.CreateNote(r.Context(), n)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListNotes GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	ns, err := h.svc.ListNotes(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": ns, "count": len(ns)})
}

// GetNote GET /api/notes/{noteId}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	n, err := h.svc.GetNote(r.Context(), userID, mux.Vars(r)["noteId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, n)
}

// UpdateNote PUT /api/notes/{noteId}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	noteID := mux.Vars(r)["noteId"]
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateNote(req.Title, req.Body); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	existing, err := h.svc.GetNote(r.Context(), userID, noteID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	existing.Title = req.Title
	existing.Body = req.Body
	out, err := h.svc.UpdateNote(r.Context(), existing)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// DeleteNote DELETE /api/notes/{noteId}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	if err := h.svc.DeleteNote(r.Context(), userID, mux.Vars(r)["noteId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
