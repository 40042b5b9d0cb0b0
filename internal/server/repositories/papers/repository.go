package papers

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.ResearchPaper) (*models.ResearchPaper, error)
	GetByID(ctx context.Context, id int64) (*models.ResearchPaper, error)
	// List orders by publication year, most recent first; a missing year counts as 0.
	List(ctx context.Context, page models.Page) ([]*models.ResearchPaper, error)
	Count(ctx context.Context) (int, error)
	// SetDocumentKey records the object storage key of an uploaded full text.
	SetDocumentKey(ctx context.Context, id int64, key string) error
}
