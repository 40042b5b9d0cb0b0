// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing
// access tokens plus server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/config"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserService provides account operations:
// - Register: create accounts with a bcrypt password hash
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Me / Contacts: account lookups for the signed-in caller
type UserService struct {
	repomanager                  repomanager.RepositoryManager
	tokens                       auth.TokenIssuer
	refreshTokenValidityDuration time.Duration
	logger                       logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, tokens auth.TokenIssuer, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:                  m,
		tokens:                       tokens,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       logger.With("module", "users"),
	}
}

// Register creates an account and signs it in. A taken username yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, fullName, role string) (*models.Account, *TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, common.ErrorInvalidInput
	}
	if role == "" {
		role = common.DefaultRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repomanager.Accounts(s.repomanager.DB()).Create(ctx, &models.Account{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating account: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, account.ID, s.repomanager.DB())
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "account registered", "user_id", account.ID, "username", account.Username)
	return account, pair, nil
}

// Login verifies the password and, on success, returns the account with a
// new TokenPair. Unknown usernames and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Account, *TokenPair, error) {
	account, err := s.repomanager.Accounts(s.repomanager.DB()).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(account.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", account.ID, "error", err)
		return nil, nil, common.ErrorInternal
	}
	if !ok {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, account.ID, s.repomanager.DB())
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Unknown tokens yield ErrorUnauthorized and
// expired ones ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.repomanager.DB())

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		if err := repo.Delete(ctx, refreshToken); err != nil {
			s.logger.Warn(ctx, "failed to delete expired refresh token", "error", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, userID int64) (*models.Account, error) {
	return s.repomanager.Accounts(s.repomanager.DB()).GetByID(ctx, userID)
}

// Contacts lists every account except the caller, in id order.
func (s *UserService) Contacts(ctx context.Context, userID int64) ([]*models.Account, error) {
	all, err := s.repomanager.Accounts(s.repomanager.DB()).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Account, 0, len(all))
	for _, a := range all {
		if a.ID != userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID int64, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
