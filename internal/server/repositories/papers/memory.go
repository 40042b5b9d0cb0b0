package papers

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.ResearchPaper]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.ResearchPaper]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, p *models.ResearchPaper) (*models.ResearchPaper, error) {
	created := r.table.Insert(func(id int64) models.ResearchPaper {
		rec := *p
		rec.ID = id
		rec.CreatedAt = r.now()
		return rec
	})
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.ResearchPaper, error) {
	p, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) List(_ context.Context, page models.Page) ([]*models.ResearchPaper, error) {
	rows := r.table.Select(nil, func(a, b models.ResearchPaper) bool {
		return a.PublicationYear() > b.PublicationYear()
	}, page)
	out := make([]*models.ResearchPaper, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	return r.table.Count(nil), nil
}

func (r *MemoryRepository) SetDocumentKey(_ context.Context, id int64, key string) error {
	if _, ok := r.table.Update(id, func(p *models.ResearchPaper) { p.DocumentKey = key }); !ok {
		return common.ErrorNotFound
	}
	return nil
}
