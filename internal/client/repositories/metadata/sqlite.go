package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bharat3214/Genei/internal/dbx"
)

// Store is the SQLite Repository. It accepts a *sql.DB or a *sql.Tx, so a
// session can be saved atomically from inside dbx.WithTx.
type Store struct {
	db dbx.DBTX
}

func NewStore(db dbx.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("session: read %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("session: write %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
		return fmt.Errorf("session: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

func (s *Store) LoadSession(ctx context.Context) (Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session WHERE key IN (?, ?, ?)`,
		KeyServerURL, KeyUsername, KeyRefreshToken)
	if err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}
	defer rows.Close()

	var out Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Session{}, fmt.Errorf("session: load: %w", err)
		}
		switch key {
		case KeyServerURL:
			out.ServerURL = value
		case KeyUsername:
			out.Username = value
		case KeyRefreshToken:
			out.RefreshToken = value
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}
	return out, nil
}

func (s *Store) SaveSession(ctx context.Context, sess Session) error {
	fields := []struct{ key, value string }{
		{KeyServerURL, sess.ServerURL},
		{KeyUsername, sess.Username},
		{KeyRefreshToken, sess.RefreshToken},
	}
	for _, f := range fields {
		var err error
		if f.value == "" {
			err = s.Delete(ctx, f.key)
		} else {
			err = s.Put(ctx, f.key, f.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
