package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (content, sender_id, receiver_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_read, created_at`

	created := *m
	err := r.db.QueryRowContext(ctx, query, m.Content, m.SenderID, m.ReceiverID).
		Scan(&created.ID, &created.Read, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `SELECT id, content, sender_id, receiver_id, is_read, created_at FROM messages WHERE id = $1`

	m := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Content, &m.SenderID, &m.ReceiverID, &m.Read, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Conversation(ctx context.Context, a, b int64, page models.Page) ([]*models.Message, error) {
	query :=
		`SELECT id, content, sender_id, receiver_id, is_read, created_at FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at, id LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, a, b, dbx.LimitArg(page.Limit), max(page.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.Content, &m.SenderID, &m.ReceiverID, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, receiver int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM messages WHERE receiver_id = $1 AND NOT is_read`, receiver).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, receiver int64, sender *int64) (int, error) {
	query :=
		`UPDATE messages SET is_read = TRUE
		 WHERE receiver_id = $1 AND NOT is_read AND ($2::bigint IS NULL OR sender_id = $2)`

	res, err := r.db.ExecContext(ctx, query, receiver, sender)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(n), nil
}
