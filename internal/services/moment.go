package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thoughtfolio/backend/internal/events"
	"github.com/thoughtfolio/backend/internal/match"
	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
	"github.com/thoughtfolio/backend/internal/titles"
)

// MomentService creates preparation moments, matches thoughts against them
// and routes review feedback.
//
// Error policy is two-tier: moment creation, enrichment and reads surface
// storage errors to the caller; publishing feedback to the learner is
// best-effort and never fails the request.
type MomentService struct {
	store  store.Store
	ranker match.Ranker
	bus    *events.Bus
	log    zerolog.Logger
}

func NewMomentService(s store.Store, r match.Ranker, bus *events.Bus, log zerolog.Logger) *MomentService {
	return &MomentService{
		store:  s,
		ranker: r,
		bus:    bus,
		log:    log.With().Str("component", "moments").Logger(),
	}
}

// CreateMoment ranks the user's thoughts against the description and
// persists the moment with its matches in one shot.
func (s *MomentService) CreateMoment(ctx context.Context, userID, description string) (*model.Moment, error) {
	matches, err := s.ranker.Rank(ctx, userID, description, "")
	if err != nil {
		return nil, err
	}
	m := &model.Moment{
		MomentID:        uuid.NewString(),
		UserID:          userID,
		Description:     description,
		Status:          model.MomentStatusOpen,
		MatchedThoughts: matches,
		CreationTime:    time.Now().UTC(),
	}
	for _, mt := range m.MatchedThoughts {
		mt.MomentID = m.MomentID
	}
	return s.store.Moments().Create(ctx, m)
}

// CreateFromEvent builds a moment from a calendar event. The title is
// analyzed so callers can prompt for enrichment when it carries no signal
// (a bare "Sync" or "1:1" says nothing about what to prepare for).
func (s *MomentService) CreateFromEvent(ctx context.Context, userID, title, description string, start *time.Time) (*model.Moment, titles.Analysis, error) {
	analysis := titles.Analyze(title, description)

	query := title
	if description != "" {
		query = title + " " + description
	}
	matches, err := s.ranker.Rank(ctx, userID, query, "")
	if err != nil {
		return nil, analysis, err
	}
	m := &model.Moment{
		MomentID:           uuid.NewString(),
		UserID:             userID,
		Description:        query,
		CalendarEventTitle: &title,
		CalendarEventStart: start,
		Status:             model.MomentStatusOpen,
		MatchedThoughts:    matches,
		CreationTime:       time.Now().UTC(),
	}
	for _, mt := range m.MatchedThoughts {
		mt.MomentID = m.MomentID
	}
	created, err := s.store.Moments().Create(ctx, m)
	return created, analysis, err
}

func (s *MomentService) GetMoment(ctx context.Context, userID, momentID string) (*model.Moment, error) {
	return s.store.Moments().GetByID(ctx, userID, momentID)
}

func (s *MomentService) ListMoments(ctx context.Context, userID string) ([]*model.Moment, error) {
	return s.store.Moments().List(ctx, userID)
}

// Enrich attaches user-supplied context to a moment and re-ranks. Review
// flags from the previous ranking do not carry over to the new one.
func (s *MomentService) Enrich(ctx context.Context, userID, momentID string, chips []string, freeText string) (*model.Moment, error) {
	m, err := s.store.Moments().GetByID(ctx, userID, momentID)
	if err != nil {
		return nil, err
	}

	userContext := BuildUserContext(chips, freeText)
	matches, err := s.ranker.Rank(ctx, userID, m.Description, userContext)
	if err != nil {
		return nil, err
	}
	for _, mt := range matches {
		mt.MomentID = momentID
	}

	if err := s.store.Moments().ReplaceMatches(ctx, userID, momentID, matches); err != nil {
		return nil, err
	}
	if err := s.store.Moments().SetUserContext(ctx, userID, momentID, userContext, model.MomentStatusEnriched); err != nil {
		return nil, err
	}
	return s.store.Moments().GetByID(ctx, userID, momentID)
}

// BuildUserContext joins chips with ", " and appends free text after
// " - " when both are present.
func BuildUserContext(chips []string, freeText string) string {
	joined := strings.Join(chips, ", ")
	switch {
	case joined != "" && freeText != "":
		return joined + " - " + freeText
	case joined != "":
		return joined
	default:
		return freeText
	}
}

// MarkHelpful records positive feedback on a matched thought and notifies
// the learner. The event is at-most-once: if the bus is full it is dropped
// and the request still succeeds.
func (s *MomentService) MarkHelpful(ctx context.Context, userID, momentID, thoughtID string) (*model.MomentThought, error) {
	return s.review(ctx, userID, momentID, thoughtID, true)
}

// MarkNotHelpful records negative feedback on a matched thought.
func (s *MomentService) MarkNotHelpful(ctx context.Context, userID, momentID, thoughtID string) (*model.MomentThought, error) {
	return s.review(ctx, userID, momentID, thoughtID, false)
}

func (s *MomentService) review(ctx context.Context, userID, momentID, thoughtID string, helpful bool) (*model.MomentThought, error) {
	mt, err := s.store.Moments().Review(ctx, userID, momentID, thoughtID, &helpful)
	if err != nil {
		return nil, err
	}

	kind := events.KindHelpful
	if !helpful {
		kind = events.KindNotHelpful
	}
	published := s.bus.Publish(events.LearningEvent{
		Kind:      kind,
		UserID:    userID,
		ThoughtID: thoughtID,
		Terms:     mt.MatchedTerms,
	})
	if !published {
		s.log.Warn().
			Str("momentId", momentID).
			Str("thoughtId", thoughtID).
			Msg("learning event dropped, bus full")
	}
	return mt, nil
}
