package activities

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.Activity]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.Activity]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, a *models.Activity) (*models.Activity, error) {
	created := r.table.Insert(func(id int64) models.Activity {
		rec := *a
		rec.ID = id
		rec.CreatedAt = r.now()
		return rec
	})
	return &created, nil
}

func (r *MemoryRepository) List(_ context.Context, page models.Page) ([]*models.Activity, error) {
	rows := r.table.Select(nil, func(a, b models.Activity) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}, page)
	out := make([]*models.Activity, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}
