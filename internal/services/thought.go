package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// ThoughtService handles thought capture, application tracking, the active
// list and discovery.
type ThoughtService struct {
	store         store.Store
	activeListCap int
}

func NewThoughtService(s store.Store, activeListCap int) *ThoughtService {
	if activeListCap <= 0 {
		activeListCap = 5
	}
	return &ThoughtService{store: s, activeListCap: activeListCap}
}

func (s *ThoughtService) CreateThought(ctx context.Context, t *model.Thought) (*model.Thought, error) {
	t.ThoughtID = uuid.NewString()
	t.CreationTime = time.Now().UTC()
	return s.store.Thoughts().Create(ctx, t)
}

func (s *ThoughtService) GetThought(ctx context.Context, userID, thoughtID string) (*model.Thought, error) {
	return s.store.Thoughts().GetByID(ctx, userID, thoughtID)
}

func (s *ThoughtService) ListThoughts(ctx context.Context, userID string) ([]*model.Thought, error) {
	return s.store.Thoughts().List(ctx, userID)
}

func (s *ThoughtService) DeleteThought(ctx context.Context, userID, thoughtID string) error {
	return s.store.Thoughts().Delete(ctx, userID, thoughtID)
}

// ApplyThought records that the user put the thought into practice.
func (s *ThoughtService) ApplyThought(ctx context.Context, userID, thoughtID string) (*model.Thought, error) {
	return s.store.Thoughts().RecordApplication(ctx, userID, thoughtID, time.Now().UTC())
}

// AddToActiveList places a thought on the user's active list. The list is
// capped; a full list returns model.ErrConflict rather than evicting.
func (s *ThoughtService) AddToActiveList(ctx context.Context, userID, thoughtID string) error {
	t, err := s.store.Thoughts().GetByID(ctx, userID, thoughtID)
	if err != nil {
		return err
	}
	if t.OnActiveList {
		return nil
	}
	n, err := s.store.Thoughts().CountActive(ctx, userID)
	if err != nil {
		return err
	}
	if n >= s.activeListCap {
		return errors.Wrapf(model.ErrConflict, "active list is full (%d)", s.activeListCap)
	}
	return s.store.Thoughts().SetOnActiveList(ctx, userID, thoughtID, true)
}

func (s *ThoughtService) RemoveFromActiveList(ctx context.Context, userID, thoughtID string) error {
	return s.store.Thoughts().SetOnActiveList(ctx, userID, thoughtID, false)
}

func (s *ThoughtService) ActiveList(ctx context.Context, userID string) ([]*model.Thought, error) {
	return s.store.Thoughts().ListActive(ctx, userID)
}

// Discover resurfaces the thought the user has gone longest without
// applying, favoring never-applied thoughts.
func (s *ThoughtService) Discover(ctx context.Context, userID string) (*model.Thought, error) {
	return s.store.Thoughts().LeastRecentlyApplied(ctx, userID)
}
