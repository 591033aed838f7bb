package store

import (
	"context"
	"time"

	"github.com/thoughtfolio/backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Contexts() Contexts
	Sources() Sources
	Thoughts() Thoughts
	Notes() Notes
	Moments() Moments
	Learning() Learning
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
}

type Contexts interface {
	Create(ctx context.Context, c *model.Context) (*model.Context, error)
	GetByID(ctx context.Context, userID, contextID string) (*model.Context, error)
	List(ctx context.Context, userID string) ([]*model.Context, error)
	Delete(ctx context.Context, userID, contextID string) error
}

type Sources interface {
	Create(ctx context.Context, s *model.Source) (*model.Source, error)
	GetByID(ctx context.Context, userID, sourceID string) (*model.Source, error)
	List(ctx context.Context, userID string) ([]*model.Source, error)
	Delete(ctx context.Context, userID, sourceID string) error
}

type Thoughts interface {
	Create(ctx context.Context, t *model.Thought) (*model.Thought, error)
	GetByID(ctx context.Context, userID, thoughtID string) (*model.Thought, error)
	// List returns a user's thoughts in creation order (oldest first) so
	// ranking ties keep a stable, reproducible order.
	List(ctx context.Context, userID string) ([]*model.Thought, error)
	Delete(ctx context.Context, userID, thoughtID string) error
	// RecordApplication increments applicationCount and stamps lastAppliedTime.
	RecordApplication(ctx context.Context, userID, thoughtID string, at time.Time) (*model.Thought, error)
	SetOnActiveList(ctx context.Context, userID, thoughtID string, on bool) error
	ListActive(ctx context.Context, userID string) ([]*model.Thought, error)
	CountActive(ctx context.Context, userID string) (int, error)
	// LeastRecentlyApplied returns the thought outside the active list whose
	// last application is oldest (never-applied thoughts first).
	LeastRecentlyApplied(ctx context.Context, userID string) (*model.Thought, error)
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	GetByID(ctx context.Context, userID, noteID string) (*model.Note, error)
	List(ctx context.Context, userID string) ([]*model.Note, error)
	Update(ctx context.Context, n *model.Note) (*model.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

type Moments interface {
	// Create persists the moment together with its matched thoughts.
	Create(ctx context.Context, m *model.Moment) (*model.Moment, error)
	GetByID(ctx context.Context, userID, momentID string) (*model.Moment, error)
	List(ctx context.Context, userID string) ([]*model.Moment, error)
	// SetUserContext stores the enrichment context and status.
	SetUserContext(ctx context.Context, userID, momentID, userContext, status string) error
	// ReplaceMatches swaps the moment's matched thoughts for a new ranking.
	// Review flags on re-matched thoughts are not carried over.
	ReplaceMatches(ctx context.Context, userID, momentID string, matches []*model.MomentThought) error
	// Review applies feedback to one matched thought. wasReviewed only ever
	// transitions to true and wasHelpful only ever transitions to false;
	// updates that would reverse either flag are silently dropped, which
	// makes rapid duplicate submissions idempotent.
	Review(ctx context.Context, userID, momentID, thoughtID string, helpful *bool) (*model.MomentThought, error)
}

// Learning persists per-(thought, keyword) weight adjustments derived from
// helpful / not-helpful feedback.
type Learning interface {
	AdjustWeight(ctx context.Context, userID, thoughtID, keyword string, delta float64) error
	// WeightsForUser returns thoughtID -> keyword -> accumulated weight.
	WeightsForUser(ctx context.Context, userID string) (map[string]map[string]float64, error)
}
