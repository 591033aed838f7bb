package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	respond "github.com/thoughtfolio/backend/internal/api/respond"
	"github.com/thoughtfolio/backend/internal/api/validate"
	"github.com/thoughtfolio/backend/internal/auth"
	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/services"
	"github.com/thoughtfolio/backend/internal/titles"
)

// MomentHandler serves moment creation, enrichment and learning feedback.
type MomentHandler struct {
	svc *services.MomentService
	az  auth.Authorizer
}

func NewMomentHandler(svc *services.MomentService, az auth.Authorizer) *MomentHandler {
	return &MomentHandler{svc: svc, az: az}
}

// momentEnvelope is the wire shape for moment responses: the moment plus
// match count, with enrichment hints when the match came back empty.
type momentEnvelope struct {
	*model.Moment
	GemsMatchedCount   int              `json:"gemsMatchedCount"`
	NeedsContext       bool             `json:"needsContext"`
	SuggestedQuestions []string         `json:"suggestedQuestions,omitempty"`
	TitleAnalysis      *titles.Analysis `json:"titleAnalysis,omitempty"`
}

func envelope(m *model.Moment, analysis *titles.Analysis) map[string]interface{} {
	env := momentEnvelope{
		Moment:           m,
		GemsMatchedCount: len(m.MatchedThoughts),
		NeedsContext:     m.NeedsContext(),
		TitleAnalysis:    analysis,
	}
	if env.NeedsContext && analysis != nil {
		env.SuggestedQuestions = analysis.SuggestedQuestions
	}
	return map[string]interface{}{"moment": env}
}

// CreateMoment POST /api/moments
func (h *MomentHandler) CreateMoment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.CreateMoment(req.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	m, err := h.svc.CreateMoment(r.Context(), userID, req.Description)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, envelope(m, nil))
}

// CreateFromEvent POST /api/moments/from-event
func (h *MomentHandler) CreateFromEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Start       *time.Time `json:"start"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.NonEmpty("title", req.Title); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	m, analysis, err := h.svc.CreateFromEvent(r.Context(), userID, req.Title, req.Description, req.Start)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, envelope(m, &analysis))
}

// GetMoment GET /api/moments/{momentId}
func (h *MomentHandler) GetMoment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	m, err := h.svc.GetMoment(r.Context(), userID, mux.Vars(r)["momentId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, envelope(m, nil))
}

// ListMoments GET /api/moments
func (h *MomentHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	ms, err := h.svc.ListMoments(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"moments": ms, "count": len(ms)})
}

// EnrichMoment POST /api/moments/{momentId}/enrich
func (h *MomentHandler) EnrichMoment(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		Chips    []string `json:"chips"`
		FreeText string   `json:"freeText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.EnrichMoment(req.Chips, req.FreeText); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	m, err := h.svc.Enrich(r.Context(), userID, mux.Vars(r)["momentId"], req.Chips, req.FreeText)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, envelope(m, nil))
}

// LearnHelpful POST /api/moments/learn/helpful
func (h *MomentHandler) LearnHelpful(w http.ResponseWriter, r *http.Request) {
	h.learn(w, r, true)
}

// LearnNotHelpful POST /api/moments/learn/not-helpful
func (h *MomentHandler) LearnNotHelpful(w http.ResponseWriter, r *http.Request) {
	h.learn(w, r, false)
}

// learn records review feedback. The review write is the primary action and
// surfaces errors; the learning signal behind it is best-effort and never
// fails the request, so success is reported as 202.
func (h *MomentHandler) learn(w http.ResponseWriter, r *http.Request, helpful bool) {
	userID, ok := authorizedUser(w, r, h.az)
	if !ok {
		return
	}
	var req struct {
		MomentID  string `json:"momentId"`
		ThoughtID string `json:"thoughtId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Review(req.MomentID, req.ThoughtID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	var (
		mt  *model.MomentThought
		err error
	)
	if helpful {
		mt, err = h.svc.MarkHelpful(r.Context(), userID, req.MomentID, req.ThoughtID)
	} else {
		mt, err = h.svc.MarkNotHelpful(r.Context(), userID, req.MomentID, req.ThoughtID)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, mt)
}
