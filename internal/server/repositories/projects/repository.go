package projects

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// List returns projects newest first.
	List(ctx context.Context, page models.Page) ([]*models.Project, error)
	Count(ctx context.Context) (int, error)
}
