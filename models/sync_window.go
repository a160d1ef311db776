// ABOUTME: This file defines the sync window watermark and per-sync statistics
// ABOUTME: The window bounds newer-than queries for incremental stream fetches

package models

import (
	"time"
)

// SyncWindow records when the last fully successful sync started and ended.
// StartedAt is captured before network calls begin and committed only when
// the sync succeeds, so a failed sync never advances the watermark.
type SyncWindow struct {
	StartedAt time.Time
	EndedAt   time.Time
}

// SyncStats tracks synchronization outcomes for observability.
type SyncStats struct {
	LastSyncTime    time.Time `json:"last_sync_time"`
	TotalSyncs      int64     `json:"total_syncs"`
	SuccessfulSyncs int64     `json:"successful_syncs"`
	FailedSyncs     int64     `json:"failed_syncs"`
	LastError       string    `json:"last_error,omitempty"`
}
