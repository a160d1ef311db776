// ABOUTME: SQLite implementation of the PendingMutationLedger interface
// ABOUTME: Reservation is one UPDATE..RETURNING statement, so concurrent callers never overlap

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"feed-sync-engine/models"
)

type sqliteLedger struct {
	db     *sql.DB
	logger *slog.Logger
}

func (l *sqliteLedger) Insert(ctx context.Context, mutations []models.PendingMutation) error {
	if len(mutations) == 0 {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ledger insert: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO pending_mutations (article_id, kind, flag, reserved)
		VALUES (?, ?, ?, 0)
		ON CONFLICT (article_id, kind)
		DO UPDATE SET flag = excluded.flag, reserved = 0`

	for _, m := range mutations {
		if _, err := tx.ExecContext(ctx, query, m.ArticleID, string(m.Kind), boolToInt(m.Flag)); err != nil {
			return fmt.Errorf("failed to insert pending mutation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger insert: %w", err)
	}

	l.logger.Debug("Queued pending mutations", "count", len(mutations))
	return nil
}

func (l *sqliteLedger) SelectForProcessing(ctx context.Context, limit int) ([]models.PendingMutation, error) {
	if limit <= 0 {
		return nil, nil
	}

	// Single statement: rows flip to reserved and come back in the same
	// step, so a concurrent caller can never reserve the same rows.
	query := `
		UPDATE pending_mutations SET reserved = 1
		WHERE rowid IN (
			SELECT rowid FROM pending_mutations WHERE reserved = 0 LIMIT ?
		)
		RETURNING article_id, kind, flag`

	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve pending mutations: %w", err)
	}
	defer rows.Close()

	var reserved []models.PendingMutation
	for rows.Next() {
		var m models.PendingMutation
		var kind string
		var flag int
		if err := rows.Scan(&m.ArticleID, &kind, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan reserved mutation: %w", err)
		}
		m.Kind = models.MutationKind(kind)
		m.Flag = flag != 0
		m.Reserved = true
		reserved = append(reserved, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reserved mutations: %w", err)
	}

	return reserved, nil
}

func (l *sqliteLedger) ReleaseProcessed(ctx context.Context, articleIDs []string) error {
	if len(articleIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`DELETE FROM pending_mutations WHERE reserved = 1 AND article_id IN (%s)`,
		placeholders(len(articleIDs)))

	if _, err := l.db.ExecContext(ctx, query, toAnySlice(articleIDs)...); err != nil {
		return fmt.Errorf("failed to release processed mutations: %w", err)
	}
	return nil
}

func (l *sqliteLedger) Requeue(ctx context.Context, articleIDs []string) error {
	if len(articleIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE pending_mutations SET reserved = 0 WHERE article_id IN (%s)`,
		placeholders(len(articleIDs)))

	if _, err := l.db.ExecContext(ctx, query, toAnySlice(articleIDs)...); err != nil {
		return fmt.Errorf("failed to requeue mutations: %w", err)
	}
	return nil
}

func (l *sqliteLedger) Discard(ctx context.Context, articleIDs []string) error {
	if len(articleIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`DELETE FROM pending_mutations WHERE article_id IN (%s)`,
		placeholders(len(articleIDs)))

	if _, err := l.db.ExecContext(ctx, query, toAnySlice(articleIDs)...); err != nil {
		return fmt.Errorf("failed to discard mutations: %w", err)
	}
	return nil
}

func (l *sqliteLedger) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_mutations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending mutations: %w", err)
	}
	return count, nil
}

func (l *sqliteLedger) PendingArticleIDs(ctx context.Context, kind models.MutationKind) (map[string]bool, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT article_id FROM pending_mutations WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to select pending article ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending article id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pending article ids: %w", err)
	}
	return ids, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toAnySlice(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
