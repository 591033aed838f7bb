package api

import (
	"context"
	"encoding/json"
	"net/http"

	respond "github.com/thoughtfolio/backend/internal/api/respond"
	"github.com/thoughtfolio/backend/internal/ai"
	"github.com/thoughtfolio/backend/internal/auth"
)

// ThoughtExtractor is the extraction contract the handler depends on.
type ThoughtExtractor interface {
	ExtractThoughts(ctx context.Context, text string, max int) ([]ai.Candidate, error)
}

// ExtractHandler serves AI-assisted thought extraction. Registered only
// when extraction is enabled in config.
type ExtractHandler struct {
	extractor ThoughtExtractor
	az        auth.Authorizer
}

func NewExtractHandler(extractor ThoughtExtractor, az auth.Authorizer) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, az: az}
}

// ExtractThoughts POST /api/thoughts/extract
func (h *ExtractHandler) ExtractThoughts(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorizedUser(w, r, h.az); !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
		Max  int    `json:"max"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Text == "" {
		respond.WriteBadRequest(w, "text is required")
		return
	}

	candidates, err := h.extractor.ExtractThoughts(r.Context(), req.Text, req.Max)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates, "count": len(candidates)})
}
