package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/thoughtfolio/backend/internal/api/respond"
	"github.com/thoughtfolio/backend/internal/titles"
)

// TitleHandler exposes the title analyzer and chip helpers. These are pure
// lookups; no auth is required.
type TitleHandler struct{}

func NewTitleHandler() *TitleHandler { return &TitleHandler{} }

// AnalyzeTitle POST /api/titles/analyze
func (h *TitleHandler) AnalyzeTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	respond.WriteJSON(w, http.StatusOK, titles.Analyze(req.Title, req.Description))
}

// SearchChips GET /api/chips?q=...&eventType=...
// Without q, returns the chips for the event type.
func (h *TitleHandler) SearchChips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	eventType := r.URL.Query().Get("eventType")

	var chips []titles.Chip
	if q == "" {
		chips = titles.ChipsForEventType(eventType)
	} else {
		chips = titles.SearchChips(q, eventType)
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"chips": chips, "count": len(chips)})
}
