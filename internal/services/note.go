package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// NoteService handles long-form notes.
type NoteService struct {
	store store.Store
}

func NewNoteService(s store.Store) *NoteService { return &NoteService{store: s} }

func (s *NoteService) CreateNote(ctx context.Context, n *model.Note) (*model.Note, error) {
	n.NoteID = uuid.NewString()
	now := time.Now().UTC()
	n.CreationTime = now
	n.UpdateTime = now
	return s.store.Notes().Create(ctx, n)
}

func (s *NoteService) GetNote(ctx context.Context, userID, noteID string) (*model.Note, error) {
	return s.store.Notes().GetByID(ctx, userID, noteID)
}

func (s *NoteService) ListNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return s.store.Notes().List(ctx, userID)
}

func (s *NoteService) UpdateNote(ctx context.Context, n *model.Note) (*model.Note, error) {
	n.UpdateTime = time.Now().UTC()
	return s.store.Notes().Update(ctx, n)
}

func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	return s.store.Notes().Delete(ctx, userID, noteID)
}
