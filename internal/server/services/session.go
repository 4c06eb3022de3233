// Package services contains server-side business logic. This file implements
// SessionService, which handles registration, login, and issuing/rotating the
// access/refresh token pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"insightboard/internal/common"
	"insightboard/internal/dbx"
	"insightboard/internal/server/auth"
	"insightboard/internal/server/config"
	"insightboard/internal/server/models"
	"insightboard/internal/server/repositories/repomanager"
)

// refreshSecretBytes is the entropy, in bytes, of an opaque refresh-token
// secret; the hex string is twice as long.
const refreshSecretBytes = 32

// TokenPair bundles a short-lived access token, its expiry, and a long-lived
// refresh token. Register, Login and Refresh all return one.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionService provides authentication-related operations:
// - Register: create users and mint the first token pair
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       *auth.PasswordHasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		hasher:                       auth.NewPasswordHasher(cfg.BcryptCost),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user with a hashed password and returns the first
// token pair of the session. A taken email yields common.ErrEmailTaken.
func (s *SessionService) Register(ctx context.Context, username, email, password string) (*TokenPair, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		user, createErr := repoTx.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
		if createErr != nil {
			return createErr
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return pair, nil
}

// Login verifies the credentials and, on success, returns a new token pair.
// An unknown email and a wrong password both yield the same
// common.ErrInvalidCredentials, so callers cannot probe for registered
// addresses.
func (s *SessionService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	// VerifySuccessRehashNeeded still counts as a match; the hash is upgraded
	// lazily when a change-password flow lands.
	if s.hasher.Verify(user.PasswordHash, password) == auth.VerifyFailed {
		return nil, common.ErrInvalidCredentials
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Refresh redeems a refresh token and rotates it: the presented token is
// marked used and a brand-new pair is issued in the same transaction. A
// token that is absent, already used, revoked or expired yields
// common.ErrInvalidToken; replaying a redeemed secret always loses.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)

		token, findErr := repoTx.Find(ctx, refreshToken)
		if findErr != nil {
			if errors.Is(findErr, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", findErr)
		}

		// Conditional update: of two concurrent redemptions of the same
		// secret at most one sees an active row and wins.
		if markErr := repoTx.MarkUsed(ctx, token.Token); markErr != nil {
			return markErr
		}

		user, userErr := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if userErr != nil {
			return fmt.Errorf("error loading token owner: %w", userErr)
		}

		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *SessionService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, expires, err := auth.GenerateAccessToken(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(refreshSecretBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expires}, nil
}
