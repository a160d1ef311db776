// ABOUTME: SQLite implementation of the per-zone change-token store
// ABOUTME: Tokens persist across restarts and are cleared to force a full resync

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// SQLiteTokenStore persists change-token cursors in the sync database.
type SQLiteTokenStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Token returns the persisted cursor for a zone, or "" when none exists.
func (s *SQLiteTokenStore) Token(ctx context.Context, zone string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM change_tokens WHERE zone = ?`, zone).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load change token for zone %s: %w", zone, err)
	}
	return token, nil
}

// SetToken stores the cursor for a zone, replacing any previous value.
func (s *SQLiteTokenStore) SetToken(ctx context.Context, zone, token string) error {
	query := `
		INSERT INTO change_tokens (zone, token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (zone)
		DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, zone, token, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to persist change token for zone %s: %w", zone, err)
	}

	s.logger.Debug("Persisted change token", "zone", zone, "has_token", token != "")
	return nil
}

// ClearToken removes the cursor so the next fetch starts from the beginning.
func (s *SQLiteTokenStore) ClearToken(ctx context.Context, zone string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM change_tokens WHERE zone = ?`, zone); err != nil {
		return fmt.Errorf("failed to clear change token for zone %s: %w", zone, err)
	}
	return nil
}
