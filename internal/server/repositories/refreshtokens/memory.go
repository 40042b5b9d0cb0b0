package refreshtokens

import (
	"context"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
)

// MemoryRepository keeps refresh tokens in a memstore table. Deleted
// tokens are tombstoned by clearing Token, since table rows are never removed.
type MemoryRepository struct {
	table *memstore.Table[models.RefreshToken]
	now   func() time.Time
}

func NewMemoryRepository(table *memstore.Table[models.RefreshToken]) *MemoryRepository {
	return &MemoryRepository{table: table, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, userID int64, token string, validity time.Duration) error {
	now := r.now()
	_, err := r.table.InsertUnique(
		func(rt models.RefreshToken) bool { return rt.Token == token },
		func(int64) models.RefreshToken {
			return models.RefreshToken{UserID: userID, Token: token, Expires: now.Add(validity), CreatedAt: now}
		})
	return err
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	rt, ok := r.table.Find(func(rt models.RefreshToken) bool { return rt.Token == token })
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	r.table.UpdateWhere(
		func(rt models.RefreshToken) bool { return rt.Token == token },
		func(rt *models.RefreshToken) bool { rt.Token = ""; return true },
	)
	return nil
}
