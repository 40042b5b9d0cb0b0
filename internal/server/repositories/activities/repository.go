// Package activities stores the append-only activity feed.
package activities

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Activity) (*models.Activity, error)
	// List returns the feed newest first.
	List(ctx context.Context, page models.Page) ([]*models.Activity, error)
}
