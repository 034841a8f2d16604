package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// UserService wraps the user endpoints with the console's conventions.
type UserService interface {
	// Search returns matches for query on field, without the built-in admin
	// account (the only record with no email).
	Search(ctx context.Context, field models.SearchField, query string) ([]models.User, error)
	// Get loads one record by id; client.ErrNotFound when there is none.
	Get(ctx context.Context, id models.ID) (*models.User, error)
	Create(ctx context.Context, u models.NewUser) error
	// Update sends the draft; the username only when it differs from
	// originalUsername.
	Update(ctx context.Context, id models.ID, originalUsername string, draft models.User) error
	Delete(ctx context.Context, id models.ID) error
	// UsernameTaken reports an exact username match.
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) Search(ctx context.Context, field models.SearchField, query string) ([]models.User, error) {
	users, err := s.client.Search(ctx, models.SearchQuery{Field: field, Value: query})
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	out := users[:0]
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id models.ID) (*models.User, error) {
	users, err := s.client.Search(ctx, models.SearchQuery{Field: models.FieldID, Value: id.String()})
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("get user %s: %w", id, client.ErrNotFound)
	}
	return &users[0], nil
}

func (s *userService) Create(ctx context.Context, u models.NewUser) error {
	if err := s.client.CreateUser(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, id models.ID, originalUsername string, draft models.User) error {
	upd := models.UserUpdate{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
	}
	if draft.Username != originalUsername {
		upd.Username = draft.Username
	}
	if err := s.client.UpdateUser(ctx, id, upd); err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id models.ID) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func (s *userService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	users, err := s.client.Search(ctx, models.SearchQuery{Field: models.FieldUsername, Value: username})
	if err != nil {
		return false, fmt.Errorf("username lookup: %w", err)
	}
	for _, u := range users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}
