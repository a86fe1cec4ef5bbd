// Package session persists the signed-in session snapshot (token plus a
// cached user document) so a restart can restore the session without
// re-entering credentials.
package session

import (
	"context"
	"time"
)

// Snapshot is the locally stored session state.
type Snapshot struct {
	Token   string
	User    []byte // JSON-encoded models.User
	SavedAt time.Time
}

type Repository interface {
	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, token string, user []byte) error
	// Load returns the stored snapshot, or common.ErrNotFound when none.
	Load(ctx context.Context) (*Snapshot, error)
	// Clear removes the snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
