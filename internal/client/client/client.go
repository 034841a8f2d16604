package client

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// Client is the contract of the remote user API.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Signup(ctx context.Context, username, password string) error
	Search(ctx context.Context, q models.SearchQuery) ([]models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) error
	UpdateUser(ctx context.Context, id models.ID, u models.UserUpdate) error
	DeleteUser(ctx context.Context, id models.ID) error
}

// CredentialSource yields the current session for authenticated requests.
// It is read on every call, so a logout takes effect immediately.
type CredentialSource interface {
	Load(ctx context.Context) (models.Credentials, error)
}
