package activities

import (
	"context"
	"fmt"

	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	query :=
		`INSERT INTO activities (type, description, related_entity_id, related_entity_type, metadata, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	created := a.Clone()
	err := r.db.QueryRowContext(ctx, query,
		a.Type, a.Description, a.RelatedEntityID, a.RelatedEntityType, a.Metadata, a.UserID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.Activity, error) {
	query :=
		`SELECT id, type, description, related_entity_id, related_entity_type, metadata, created_at, user_id
		 FROM activities ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, dbx.LimitArg(page.Limit), max(page.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Activity{}
	for rows.Next() {
		a := &models.Activity{}
		if err := rows.Scan(&a.ID, &a.Type, &a.Description, &a.RelatedEntityID, &a.RelatedEntityType,
			&a.Metadata, &a.CreatedAt, &a.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
