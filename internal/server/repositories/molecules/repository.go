// Package molecules stores chemical structures, keyed by id and by SMILES.
package molecules

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	// Create stores a molecule. A SMILES string that is already stored
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, m *models.Molecule) (*models.Molecule, error)
	GetByID(ctx context.Context, id int64) (*models.Molecule, error)
	// GetBySMILES is an exact, case-sensitive match.
	GetBySMILES(ctx context.Context, smiles string) (*models.Molecule, error)
	// List returns the newest molecules first.
	List(ctx context.Context, page models.Page) ([]*models.Molecule, error)
	Count(ctx context.Context) (int, error)
}
