// Package services contains the application services behind the CLI
// commands. They sit between the REST client and the local SQLite store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/client/models"
	"github.com/bharat3214/Genei/internal/client/repositories/metadata"
	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Login and Register persist the username and refresh token locally, so a
// later run can Resume without asking for the password again. Close saves
// the latest refresh token, since the server rotates it on every refresh.
type AuthService interface {
	Register(ctx context.Context, username, fullName string, password []byte) (*models.Account, error)
	Login(ctx context.Context, username string, password []byte) (*models.Account, error)
	Resume(ctx context.Context) (*models.Account, error)
	SavedUsername(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client    client.Client
	db        *sql.DB
	serverURL string
}

// NewAuthService builds the service for the API at serverURL. A session saved
// against a different server is not resumed.
func NewAuthService(c client.Client, db *sql.DB, serverURL string) AuthService {
	return &authService{client: c, db: db, serverURL: serverURL}
}

func (a *authService) store() metadata.Repository {
	return metadata.NewStore(a.db)
}

// Register creates the account on the server and starts a session for it.
// The password buffer is wiped once the request has been sent.
func (a *authService) Register(ctx context.Context, username, fullName string, password []byte) (*models.Account, error) {
	defer common.WipeByteArray(password)

	s, err := a.client.Register(ctx, username, string(password), fullName)
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, s.User.Username, s.RefreshToken); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &s.User, nil
}

// Login authenticates against the server and saves the session locally.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Account, error) {
	defer common.WipeByteArray(password)

	s, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.saveSession(ctx, s.User.Username, s.RefreshToken); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &s.User, nil
}

// Resume restores the session saved by a previous run. It returns
// client.ErrNoSavedSession when there is nothing to resume, and drops the
// saved session when it belongs to another server or the server no longer
// accepts it.
func (a *authService) Resume(ctx context.Context) (*models.Account, error) {
	store := a.store()

	sess, err := store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Empty() {
		return nil, client.ErrNoSavedSession
	}
	if sess.ServerURL != "" && sess.ServerURL != a.serverURL {
		if err := store.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, client.ErrNoSavedSession
	}

	pair, err := a.client.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cerr := store.Clear(ctx); cerr != nil {
				return nil, cerr
			}
			return nil, client.ErrNoSavedSession
		}
		return nil, err
	}
	if err := store.Put(ctx, metadata.KeyRefreshToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	return a.client.Me(ctx)
}

// SavedUsername returns the username of the saved session, or "" if none.
func (a *authService) SavedUsername(ctx context.Context) (string, error) {
	return a.store().Get(ctx, metadata.KeyUsername)
}

func (a *authService) saveSession(ctx context.Context, username, refreshToken string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewStore(tx).SaveSession(ctx, metadata.Session{
			ServerURL:    a.serverURL,
			Username:     username,
			RefreshToken: refreshToken,
		})
	})
}

// Logout forgets the local session and the in-memory tokens.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetTokens("", "")
	return a.store().Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close saves the current refresh token, if a session is active, and
// releases the client.
func (a *authService) Close(ctx context.Context) error {
	var saveErr error
	if token := a.client.RefreshToken(); token != "" {
		saveErr = a.store().Put(ctx, metadata.KeyRefreshToken, token)
	}
	return errors.Join(saveErr, a.client.Close())
}
