package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// LibraryService handles contexts and sources, the organizational shell
// around thoughts and notes.
type LibraryService struct {
	store store.Store
}

func NewLibraryService(s store.Store) *LibraryService { return &LibraryService{store: s} }

func (s *LibraryService) CreateContext(ctx context.Context, c *model.Context) (*model.Context, error) {
	c.ContextID = uuid.NewString()
	c.CreationTime = time.Now().UTC()
	return s.store.Contexts().Create(ctx, c)
}

func (s *LibraryService) GetContext(ctx context.Context, userID, contextID string) (*model.Context, error) {
	return s.store.Contexts().GetByID(ctx, userID, contextID)
}

func (s *LibraryService) ListContexts(ctx context.Context, userID string) ([]*model.Context, error) {
	return s.store.Contexts().List(ctx, userID)
}

func (s *LibraryService) DeleteContext(ctx context.Context, userID, contextID string) error {
	return s.store.Contexts().Delete(ctx, userID, contextID)
}

func (s *LibraryService) CreateSource(ctx context.Context, src *model.Source) (*model.Source, error) {
	src.SourceID = uuid.NewString()
	src.CreationTime = time.Now().UTC()
	return s.store.Sources().Create(ctx, src)
}

func (s *LibraryService) GetSource(ctx context.Context, userID, sourceID string) (*model.Source, error) {
	return s.store.Sources().GetByID(ctx, userID, sourceID)
}

func (s *LibraryService) ListSources(ctx context.Context, userID string) ([]*model.Source, error) {
	return s.store.Sources().List(ctx, userID)
}

func (s *LibraryService) DeleteSource(ctx context.Context, userID, sourceID string) error {
	return s.store.Sources().Delete(ctx, userID, sourceID)
}
