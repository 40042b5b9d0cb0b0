package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bharat3214/Genei/internal/dbx"
	"github.com/bharat3214/Genei/internal/server/repositories/accounts"
	"github.com/bharat3214/Genei/internal/server/repositories/messages"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)
	assert.Equal(t, db, m.DB())
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager(db)

	assert.IsType(t, &accounts.PostgresRepository{}, m.Accounts(db))
	assert.IsType(t, &messages.PostgresRepository{}, m.Messages(db))
	assert.NotNil(t, m.RefreshTokens(db))
	assert.NotNil(t, m.Molecules(db))
	assert.NotNil(t, m.DrugCandidates(db))
	assert.NotNil(t, m.Projects(db))
	assert.NotNil(t, m.Activities(db))
	assert.NotNil(t, m.ResearchPapers(db))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewPostgresRepositoryManager(db).RunMigrations(context.Background())
	require.EqualError(t, err, "boom")
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()
	m := NewPostgresRepositoryManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, m.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		assert.NotNil(t, tx)
		return nil
	}))

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := m.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return nil, errors.New("bad dsn")
	}
	defer func() { sqlOpen = orig }()

	_, err := OpenPostgres(context.Background(), "postgres://x")
	require.EqualError(t, err, "bad dsn")
}

func TestOpenPostgres_PingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	defer func() { sqlOpen = orig }()

	mock.ExpectPing()
	m, err := OpenPostgres(context.Background(), "postgres://x")
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
