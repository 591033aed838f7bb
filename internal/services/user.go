package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thoughtfolio/backend/internal/model"
	"github.com/thoughtfolio/backend/internal/store"
)

// UserService handles user-related operations.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	if u.TimeZone == "" {
		u.TimeZone = "UTC"
	}
	u.Status = "ACTIVE"
	u.CreationTime = time.Now().UTC()
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}
