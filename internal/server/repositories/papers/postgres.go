package papers

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

const selectPaper = `SELECT id, title, authors, abstract, journal, year, doi, url, document_key, created_at FROM research_papers`

type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(row scanner) (*models.ResearchPaper, error) {
	p := &models.ResearchPaper{}
	err := row.Scan(&p.ID, &p.Title, &p.Authors, &p.Abstract, &p.Journal, &p.Year, &p.DOI, &p.URL, &p.DocumentKey, &p.CreatedAt)
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.ResearchPaper) (*models.ResearchPaper, error) {
	query :=
		`INSERT INTO research_papers (title, authors, abstract, journal, year, doi, url, document_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`

	created := p.Clone()
	err := r.db.QueryRowContext(ctx, query, p.Title, p.Authors, p.Abstract, p.Journal, p.Year, p.DOI, p.URL, p.DocumentKey).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.ResearchPaper, error) {
	p, err := scanPaper(r.db.QueryRowContext(ctx, selectPaper+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.ResearchPaper, error) {
	rows, err := r.db.QueryContext(ctx, selectPaper+` ORDER BY COALESCE(year, 0) DESC, id LIMIT $1 OFFSET $2`,
		dbx.LimitArg(page.Limit), max(page.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.ResearchPaper{}
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM research_papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SetDocumentKey(ctx context.Context, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE research_papers SET document_key = $2 WHERE id = $1`, id, key)
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
