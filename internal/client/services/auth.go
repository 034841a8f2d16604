// Package services contains application services for the console.
// This file defines the authentication service: login, signup, logout and
// the logged-in check used by the route guard.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// SessionStore is the part of the session service the services need.
type SessionStore interface {
	client.CredentialSource
	Save(ctx context.Context, c models.Credentials) error
	Clear(ctx context.Context) error
	HasToken(ctx context.Context) bool
}

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login: authenticate against the API and persist the session.
//   - Register: create a new account on the API.
//   - Logout: clear both stored credentials.
//   - LoggedIn: report whether a bearer token is stored.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) bool
}

type authService struct {
	client  client.Client
	session SessionStore
	log     logging.Logger
}

func NewAuthService(c client.Client, s SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, session: s, log: log}
}

// Login stores the bearer token together with the basic credential derived
// from username and password; read endpoints authenticate with the latter.
func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	creds := models.Credentials{
		Token:  res.Token,
		Basic:  models.BasicCredential(username, password),
		UserID: res.UserID,
	}
	if err := a.session.Save(ctx, creds); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.log.Info(ctx, "logged in", "username", username, "user_id", res.UserID)
	return res, nil
}

func (a *authService) Register(ctx context.Context, username, password string) error {
	if err := a.client.Signup(ctx, username, password); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	return a.session.HasToken(ctx)
}
