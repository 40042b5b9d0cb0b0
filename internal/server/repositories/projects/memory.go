package projects

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.Project]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.Project]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	created := r.table.Insert(func(id int64) models.Project {
		rec := *p
		rec.ID = id
		rec.CreatedAt = r.now()
		if rec.Status == "" {
			rec.Status = models.ProjectActive
		}
		return rec
	})
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.Project, error) {
	p, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context, page models.Page) ([]*models.Project, error) {
	rows := r.table.Select(nil, func(a, b models.Project) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}, page)
	out := make([]*models.Project, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	return r.table.Count(nil), nil
}
