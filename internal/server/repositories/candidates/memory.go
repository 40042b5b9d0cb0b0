package candidates

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.DrugCandidate]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.DrugCandidate]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, c *models.DrugCandidate) (*models.DrugCandidate, error) {
	created := r.table.Insert(func(id int64) models.DrugCandidate {
		rec := *c
		rec.ID = id
		rec.CreatedAt = r.now()
		if rec.Status == "" {
			rec.Status = models.CandidateActive
		}
		return rec
	})
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.DrugCandidate, error) {
	c, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func byScore(a, b models.DrugCandidate) bool {
	return a.Score() > b.Score()
}

func (r *MemoryRepository) List(_ context.Context, page models.Page) ([]*models.DrugCandidate, error) {
	rows := r.table.Select(nil, byScore, page)
	out := make([]*models.DrugCandidate, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, patch models.CandidatePatch) (*models.DrugCandidate, error) {
	c, ok := r.table.Update(id, patch.Apply)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	return r.table.Count(nil), nil
}
