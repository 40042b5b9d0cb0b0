package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

type MemoryRepository struct {
	table *memstore.Table[models.Account]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.Account]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	created, err := r.table.InsertUnique(
		func(existing models.Account) bool { return strings.EqualFold(existing.Username, account.Username) },
		func(id int64) models.Account {
			a := *account
			a.ID = id
			a.CreatedAt = r.now()
			return a
		})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.Account, error) {
	a, ok := r.table.Get(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	a, ok := r.table.Find(func(a models.Account) bool { return strings.EqualFold(a.Username, username) })
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Account, error) {
	rows := r.table.Select(nil, nil, models.Page{})
	out := make([]*models.Account, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}
