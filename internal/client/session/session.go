// Package session persists the console's credentials client side.
//
// The session is an explicit service handed to every component that needs
// it; nothing reads credentials from ambient state. Login writes, logout
// clears, everything else only reads.
//
// Values are sealed with cryptox before they reach the metadata table, and
// each value is bound to its key so rows cannot be swapped.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/cryptox"
	"github.com/dmitrijs2005/useradmin/internal/dbx"
	"github.com/dmitrijs2005/useradmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Storage keys. Token and basic credential are always written and removed
// together.
const (
	KeyToken  = "auth_token"
	KeyBasic  = "basic_credentials"
	KeyUserID = "user_id"
)

var sessionKeys = []string{KeyToken, KeyBasic, KeyUserID}

// TokenInfo is what the console can learn from the bearer token without
// verifying it.
type TokenInfo struct {
	Subject   string
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Name returns the best human label for the session owner.
func (i TokenInfo) Name() string {
	if i.Username != "" {
		return i.Username
	}
	return i.Subject
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// Service reads, writes and clears the stored credentials.
type Service struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	log    logging.Logger
}

func NewService(db *sql.DB, sealer *cryptox.Sealer, log logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{db: db, sealer: sealer, log: log}
}

// Load returns the stored credentials. An empty session is not an error.
func (s *Service) Load(ctx context.Context) (models.Credentials, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	values := make(map[string]string, len(sessionKeys))
	for _, key := range sessionKeys {
		sealed, err := repo.Get(ctx, key)
		if err != nil {
			return models.Credentials{}, err
		}
		if sealed == nil {
			continue
		}
		plain, err := s.sealer.Open(sealed, []byte(key))
		if err != nil {
			return models.Credentials{}, fmt.Errorf("%s: %w", key, common.ErrCorruptValue)
		}
		values[key] = string(plain)
	}

	return models.Credentials{
		Token:  values[KeyToken],
		Basic:  values[KeyBasic],
		UserID: models.ID(values[KeyUserID]),
	}, nil
}

// Save replaces the stored credentials atomically.
func (s *Service) Save(ctx context.Context, c models.Credentials) error {
	values := map[string]string{
		KeyToken:  c.Token,
		KeyBasic:  c.Basic,
		KeyUserID: c.UserID.String(),
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range sessionKeys {
			if err := repo.Set(ctx, key, s.sealer.Seal([]byte(values[key]), []byte(key))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear removes token, basic credential and user id together.
func (s *Service) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, sessionKeys...)
}

// HasToken reports whether a bearer token is stored. Unreadable storage
// counts as no session.
func (s *Service) HasToken(ctx context.Context) bool {
	c, err := s.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session unreadable, treating as logged out", "error", err)
		return false
	}
	return c.HasToken()
}

// Claims decodes the stored bearer token without checking its signature;
// verification belongs to the API. Opaque tokens yield common.ErrOpaqueToken.
func (s *Service) Claims(ctx context.Context) (*TokenInfo, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !c.HasToken() {
		return nil, common.ErrNoSession
	}
	return ParseToken(c.Token)
}

// ParseToken extracts TokenInfo from an unverified JWT.
func ParseToken(token string) (*TokenInfo, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.Join(common.ErrOpaqueToken, err)
	}

	info := &TokenInfo{Subject: claims.Subject, Username: claims.Username}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
