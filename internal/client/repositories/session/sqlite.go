package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/dbx"
)

// SQLiteRepository keeps at most one session snapshot in a single-row table.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, token string, user []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user, saved_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, user = excluded.user, saved_at = excluded.saved_at
	`, token, user, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := r.db.QueryRowContext(ctx, `SELECT token, user, saved_at FROM session WHERE id = 1`).
		Scan(&s.Token, &s.User, &s.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}
	return &s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session snapshot: %w", err)
	}
	return nil
}
