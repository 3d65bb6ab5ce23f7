package services

import (
	"context"
	"errors"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// ErrInvalidCredentials is returned by Login for an unknown username or
// a wrong password; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService handles account operations.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

// Register creates a new account. A taken username fails with
// model.ErrConflict before anything is stored.
func (s *UserService) Register(ctx context.Context, u *model.User) (*model.User, error) {
	return s.store.Users().Create(ctx, u)
}

// Login looks up the user and compares the stored password verbatim.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.store.Users().Get(ctx, id)
}

// GetUserBadges returns the badges a user has earned.
func (s *UserService) GetUserBadges(ctx context.Context, userID int64) ([]*model.Badge, error) {
	return s.store.Badges().ListForUser(ctx, userID)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, p model.UserPatch) (*model.User, error) {
	return s.store.Users().Update(ctx, id, p)
}
