// ABOUTME: This file declares the abstract wire contract of the remote record store
// ABOUTME: Implementations report failures as classifiable *Error values

package remote

import (
	"context"

	"feed-sync-engine/models"
)

// Store is one logical remote record store partitioned into zones. Every
// call either succeeds or returns a failure classifiable by Classify.
type Store interface {
	// CreateZone provisions a zone. Creating an existing zone is a no-op.
	CreateZone(ctx context.Context, zone string) error

	// Save writes records with overwrite semantics, idempotent per record id.
	Save(ctx context.Context, zone string, records []models.RemoteRecord) error

	// SaveIfUnchanged writes records only where the supplied Version still
	// matches the server's. Rejected records are reported through a
	// CodeConflict or CodePartialFailure error.
	SaveIfUnchanged(ctx context.Context, zone string, records []models.RemoteRecord) error

	// Delete removes records by id. Deleting a missing record is a no-op.
	Delete(ctx context.Context, zone string, ids []string) error

	// Query returns the zone's records of one type matching the predicate.
	// A nil predicate matches everything.
	Query(ctx context.Context, zone string, recordType models.RecordType, match func(models.RemoteRecord) bool) ([]models.RemoteRecord, error)

	// FetchChanges returns all changes after the given cursor token. An
	// empty token means from the beginning. The returned set carries the
	// token that follows the batch.
	FetchChanges(ctx context.Context, zone string, token string) (*models.ChangeSet, error)
}

// TokenStore persists change-token cursors per zone across restarts.
type TokenStore interface {
	Token(ctx context.Context, zone string) (string, error)
	SetToken(ctx context.Context, zone, token string) error
	ClearToken(ctx context.Context, zone string) error
}

// ChangeHandler applies one fetched change batch to local state. The change
// token is advanced only after the handler returns nil.
type ChangeHandler func(ctx context.Context, changed []models.RemoteRecord, deleted []models.RecordKey) error
