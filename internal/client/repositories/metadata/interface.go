// Package metadata keeps the CLI's signed-in session in its local SQLite
// database, so a login survives restarts.
package metadata

import (
	"context"
)

// Keys of the session table.
const (
	KeyServerURL    = "server_url"
	KeyUsername     = "username"
	KeyRefreshToken = "refresh_token"
)

// Session is what a later run needs to resume without a password.
type Session struct {
	ServerURL    string
	Username     string
	RefreshToken string
}

// Empty reports whether there is no refresh token to resume with.
func (s Session) Empty() bool {
	return s.RefreshToken == ""
}

type Repository interface {
	// Get returns "" when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	LoadSession(ctx context.Context) (Session, error)
	// SaveSession stores every non-empty field of s and removes the rest.
	SaveSession(ctx context.Context, s Session) error
}
