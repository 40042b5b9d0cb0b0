package candidates

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

const candidateColumns = `id, name, molecule_id, target_protein, binding_affinity, status, ai_score, properties, created_at, user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (*models.DrugCandidate, error) {
	c := &models.DrugCandidate{}
	err := row.Scan(&c.ID, &c.Name, &c.MoleculeID, &c.TargetProtein, &c.BindingAffinity, &c.Status,
		&c.AIScore, &c.Properties, &c.CreatedAt, &c.UserID)
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.DrugCandidate) (*models.DrugCandidate, error) {
	query :=
		`INSERT INTO drug_candidates (name, molecule_id, target_protein, binding_affinity, status, ai_score, properties, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`

	created := c.Clone()
	if created.Status == "" {
		created.Status = models.CandidateActive
	}
	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.MoleculeID, c.TargetProtein, c.BindingAffinity, string(created.Status), c.AIScore, c.Properties, c.UserID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.DrugCandidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM drug_candidates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.DrugCandidate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+candidateColumns+` FROM drug_candidates ORDER BY COALESCE(ai_score, 0) DESC, id LIMIT $1 OFFSET $2`,
		dbx.LimitArg(page.Limit), max(page.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.DrugCandidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Update locks the row, applies the patch in Go and writes every column
// back, so the merge rules live in one place (models.CandidatePatch).
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.CandidatePatch) (*models.DrugCandidate, error) {
	c, err := scanCandidate(r.db.QueryRowContext(ctx,
		`SELECT `+candidateColumns+` FROM drug_candidates WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	patch.Apply(c)

	query :=
		`UPDATE drug_candidates
		 SET name = $2, molecule_id = $3, target_protein = $4, binding_affinity = $5, status = $6, ai_score = $7, properties = $8, user_id = $9
		 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		id, c.Name, c.MoleculeID, c.TargetProtein, c.BindingAffinity, string(c.Status), c.AIScore, c.Properties, c.UserID,
	); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM drug_candidates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
