package messages

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.Message]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.Message]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	created := r.table.Insert(func(id int64) models.Message {
		rec := *m
		rec.ID = id
		rec.Read = false
		rec.CreatedAt = r.now()
		return rec
	})
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.Message, error) {
	m, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func oldestFirst(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (r *MemoryRepository) Conversation(_ context.Context, a, b int64, page models.Page) ([]*models.Message, error) {
	rows := r.table.Select(func(m models.Message) bool { return m.Between(a, b) }, oldestFirst, page)
	out := make([]*models.Message, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *MemoryRepository) CountUnread(_ context.Context, receiver int64) (int, error) {
	return r.table.Count(func(m models.Message) bool { return m.ReceiverID == receiver && !m.Read }), nil
}

func (r *MemoryRepository) MarkRead(_ context.Context, id int64) error {
	if _, ok := r.table.Update(id, func(m *models.Message) { m.Read = true }); !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MemoryRepository) MarkAllRead(_ context.Context, receiver int64, sender *int64) (int, error) {
	match := func(m models.Message) bool {
		return m.ReceiverID == receiver && (sender == nil || m.SenderID == *sender)
	}
	return r.table.UpdateWhere(match, func(m *models.Message) bool {
		if m.Read {
			return false
		}
		m.Read = true
		return true
	}), nil
}
