package candidates

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var columns = []string{"id", "name", "molecule_id", "target_protein", "binding_affinity", "status", "ai_score", "properties", "created_at", "user_id"}

func TestCreate_DefaultsStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+drug_candidates.*RETURNING\s+id,\s*created_at$`).
		WithArgs("CMP-42X", sqlmock.AnyArg(), "EGFR", sqlmock.AnyArg(), "active", 0.92, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	c, err := repo.Create(context.Background(), &models.DrugCandidate{Name: "CMP-42X", TargetProtein: "EGFR", AIScore: score(0.92)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, models.CandidateActive, c.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrderedByScore(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)ORDER\s+BY\s+COALESCE\(ai_score,\s*0\)\s+DESC,\s*id\s+LIMIT\s+\$1\s+OFFSET\s+\$2$`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "CMP-42X", int64(2), "EGFR", 8.7, "active", 0.92, []byte(`{}`), time.Now(), int64(1)).
			AddRow(int64(2), "CMP-18A", nil, "PI3K", nil, "testing", nil, []byte(`{}`), time.Now(), nil))

	list, err := repo.List(context.Background(), models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), *list[0].MoleculeID)
	assert.Nil(t, list[1].AIScore)
	assert.Equal(t, models.CandidateTesting, list[1].Status)
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+drug_candidates\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "CMP-42X", nil, "EGFR", 8.7, "active", 0.92, []byte(`{}`), time.Now(), int64(1)))
	mock.ExpectExec(`(?s)^UPDATE\s+drug_candidates\s+SET.*WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(1), "CMP-42X", nil, "EGFR", 8.7, "approved", 0.92, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	status := models.CandidateApproved
	c, err := repo.Update(context.Background(), 1, models.CandidatePatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.CandidateApproved, c.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FOR\s+UPDATE$`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 99, models.CandidatePatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ExecError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FOR\s+UPDATE$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "x", nil, "", nil, "active", nil, []byte(`{}`), time.Now(), nil))
	mock.ExpectExec(`(?s)^UPDATE\s+drug_candidates`).WillReturnError(errors.New("write failed"))

	_, err := repo.Update(context.Background(), 1, models.CandidatePatch{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+drug_candidates\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
