// Package accounts stores registered researcher accounts.
package accounts

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	// Create stores a new account. A username that already exists, compared
	// case-insensitively, yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// List returns all accounts in id order.
	List(ctx context.Context) ([]*models.Account, error)
}
