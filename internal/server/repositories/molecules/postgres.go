package molecules

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

const selectMolecule = `SELECT id, name, smiles, formula, molecular_weight, inchi_key, pubchem_id,
	structure, properties, created_at, user_id FROM molecules`

type scanner interface {
	Scan(dest ...any) error
}

func scanMolecule(row scanner) (*models.Molecule, error) {
	m := &models.Molecule{}
	err := row.Scan(&m.ID, &m.Name, &m.SMILES, &m.Formula, &m.MolecularWeight, &m.InChIKey, &m.PubChemID,
		&m.Structure, &m.Properties, &m.CreatedAt, &m.UserID)
	return m, err
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Molecule) (*models.Molecule, error) {
	query :=
		`INSERT INTO molecules (name, smiles, formula, molecular_weight, inchi_key, pubchem_id, structure, properties, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`

	created := m.Clone()
	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.SMILES, m.Formula, m.MolecularWeight, m.InChIKey, m.PubChemID, m.Structure, m.Properties, m.UserID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Molecule, error) {
	return r.getOne(ctx, selectMolecule+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetBySMILES(ctx context.Context, smiles string) (*models.Molecule, error) {
	return r.getOne(ctx, selectMolecule+` WHERE smiles = $1`, smiles)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Molecule, error) {
	m, err := scanMolecule(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.Molecule, error) {
	rows, err := r.db.QueryContext(ctx, selectMolecule+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		dbx.LimitArg(page.Limit), max(page.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Molecule{}
	for rows.Next() {
		m, err := scanMolecule(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM molecules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
