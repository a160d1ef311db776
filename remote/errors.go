// ABOUTME: This file defines the typed failure surface of the remote record store
// ABOUTME: Store implementations report failures as *Error values carrying a code

package remote

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies a class of remote store failure.
type Code int

const (
	CodeUnknown Code = iota
	// CodeRateLimited is a transient overload. RetryAfter carries the
	// server-dictated delay before the same operation may be retried.
	CodeRateLimited
	// CodeZoneNotFound means the zone was never created.
	CodeZoneNotFound
	// CodeZoneDeleted means the user destroyed the zone out-of-band.
	CodeZoneDeleted
	// CodeTokenExpired means the change cursor is too old to resume from.
	CodeTokenExpired
	// CodeConflict means a save-if-unchanged write lost to a newer server
	// version.
	CodeConflict
	// CodePartialFailure means some batch items failed while others
	// succeeded. ItemErrors holds the per-record failures.
	CodePartialFailure
	// CodeBatchTooLarge means the request exceeded the per-request item cap.
	CodeBatchTooLarge
)

// Error is a classifiable remote store failure.
type Error struct {
	Code       Code
	Message    string
	RetryAfter time.Duration
	// ItemErrors maps record id to the failure for that record when
	// Code is CodePartialFailure.
	ItemErrors map[string]error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Code {
	case CodeRateLimited:
		return fmt.Sprintf("remote store rate limited, retry after %s", e.RetryAfter)
	case CodeZoneNotFound:
		return "remote zone not found"
	case CodeZoneDeleted:
		return "remote zone deleted by user"
	case CodeTokenExpired:
		return "change token expired"
	case CodeConflict:
		return "record changed on server"
	case CodePartialFailure:
		return fmt.Sprintf("partial failure for %d records", len(e.ItemErrors))
	case CodeBatchTooLarge:
		return "batch exceeds per-request item cap"
	default:
		return "unknown remote store error"
	}
}

// ErrZoneDeletedByUser is surfaced to callers when the remote zone was
// deliberately destroyed. It is never retried automatically: higher layers
// must run the destructive local cleanup path and re-provision the account.
var ErrZoneDeletedByUser = errors.New("remote zone was deleted by the user")

// ErrConflict is surfaced when a save-if-unchanged write is rejected. The
// caller must refetch the server record and retry at a higher level.
var ErrConflict = errors.New("save rejected, server record changed")
