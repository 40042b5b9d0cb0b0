// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/server/models"
)

// Repository issues, retrieves, and revokes refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque string. Absent tokens
	// yield common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
