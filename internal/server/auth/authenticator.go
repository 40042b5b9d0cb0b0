package auth

import (
	"context"
	"time"
)

// Authenticator resolves a bearer token to an account id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// TokenIssuer mints access tokens for an account.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// JWTAuthenticator signs and verifies HS256 access tokens with a shared secret.
type JWTAuthenticator struct {
	secret   []byte
	validity time.Duration
}

func NewJWTAuthenticator(secret string, validity time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), validity: validity}
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (int64, error) {
	return GetUserIDFromToken(token, a.secret)
}

func (a *JWTAuthenticator) Issue(userID int64) (string, error) {
	return GenerateToken(userID, a.secret, a.validity)
}
