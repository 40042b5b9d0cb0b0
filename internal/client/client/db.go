package client

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/bharat3214/Genei/internal/client/migrations"
	"github.com/bharat3214/Genei/internal/filex"
)

const (
	memoryDSN        = ":memory:"
	busyTimeoutMilli = 5000
)

// RunMigrations brings the session database up to the latest embedded schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("session db: dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("session db: migrate: %w", err)
	}
	return nil
}

// InitDatabase opens the session database at path, creating the file and its
// directory on first use, and migrates it. One connection is kept; a second
// CLI on the same file waits up to the busy timeout for the lock.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path != memoryDSN {
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("session db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session db: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMilli)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
