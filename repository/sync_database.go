// ABOUTME: SQLite-backed sync database holding the pending-mutation ledger and change tokens
// ABOUTME: Uses WAL mode with a single-writer connection pool so reservations stay atomic

package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SyncDatabase owns the local durable sync state: the pending-mutation
// ledger and the per-zone change tokens. It survives process restarts.
type SyncDatabase struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSyncDatabase creates or opens the sync database at the given path.
// Safe to call multiple times; the schema is applied idempotently.
func OpenSyncDatabase(path string, logger *slog.Logger) (*SyncDatabase, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sync database: %w", err)
	}

	// SQLite supports one writer at a time. A single pooled connection
	// serializes reservation statements and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sync database schema: %w", err)
	}

	return &SyncDatabase{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (d *SyncDatabase) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Ledger returns the pending-mutation ledger view of the database.
func (d *SyncDatabase) Ledger() PendingMutationLedger {
	return &sqliteLedger{db: d.db, logger: d.logger}
}

// TokenStore returns the change-token store view of the database.
func (d *SyncDatabase) TokenStore() *SQLiteTokenStore {
	return &SQLiteTokenStore{db: d.db, logger: d.logger}
}
