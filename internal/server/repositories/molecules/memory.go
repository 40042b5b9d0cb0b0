package molecules

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.Molecule]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.Molecule]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, m *models.Molecule) (*models.Molecule, error) {
	created, err := r.table.InsertUnique(
		func(existing models.Molecule) bool { return existing.SMILES == m.SMILES },
		func(id int64) models.Molecule {
			rec := *m
			rec.ID = id
			rec.CreatedAt = r.now()
			return rec
		})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.Molecule, error) {
	m, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (r *MemoryRepository) GetBySMILES(_ context.Context, smiles string) (*models.Molecule, error) {
	m, ok := r.table.Find(func(m models.Molecule) bool { return m.SMILES == smiles })
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func newestFirst(a, b models.Molecule) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (r *MemoryRepository) List(_ context.Context, page models.Page) ([]*models.Molecule, error) {
	rows := r.table.Select(nil, newestFirst, page)
	out := make([]*models.Molecule, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	return r.table.Count(nil), nil
}
