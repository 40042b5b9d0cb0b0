// Package candidates stores drug candidates, the only catalog record kind
// that supports partial updates.
package candidates

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.DrugCandidate) (*models.DrugCandidate, error)
	GetByID(ctx context.Context, id int64) (*models.DrugCandidate, error)
	// List orders by AI score, highest first; a missing score counts as 0.
	List(ctx context.Context, page models.Page) ([]*models.DrugCandidate, error)
	// Update merges patch into the stored record. Unknown ids yield
	// common.ErrorNotFound and leave the store unchanged.
	Update(ctx context.Context, id int64, patch models.CandidatePatch) (*models.DrugCandidate, error)
	Count(ctx context.Context) (int, error)
}
