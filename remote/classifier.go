// ABOUTME: This file maps opaque remote failures onto a fixed set of outcomes
// ABOUTME: The zone client drives its retry, recreate, chunk and fail paths off these outcomes

package remote

import (
	"errors"
	"time"
)

// Outcome is the classification of a remote operation result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeRetry means wait the server-dictated delay and retry the same
	// operation. Retry count is unbounded.
	OutcomeRetry
	// OutcomeZoneMissing means create the zone, then retry the original
	// operation once.
	OutcomeZoneMissing
	// OutcomeZoneDeleted is fatal to the current sync and must surface as a
	// distinct condition, never as a generic failure.
	OutcomeZoneDeleted
	// OutcomeTokenExpired means discard the cursor and refetch from the
	// beginning.
	OutcomeTokenExpired
	// OutcomeConflict means a save-if-unchanged record lost; the caller must
	// refetch rather than blindly retry.
	OutcomeConflict
	// OutcomePartialFailure means some batch items failed; item failures
	// that are themselves zone-missing or zone-deleted are promoted before
	// this outcome is returned.
	OutcomePartialFailure
	// OutcomeBatchTooLarge means split the batch and resubmit each piece.
	OutcomeBatchTooLarge
	// OutcomeFatal is everything else; surfaced to the caller, no retry.
	OutcomeFatal
)

// Classify resolves an error from a remote operation into an outcome. The
// returned duration is meaningful only for OutcomeRetry.
func Classify(err error) (Outcome, time.Duration) {
	if err == nil {
		return OutcomeSuccess, 0
	}

	var remoteErr *Error
	if !errors.As(err, &remoteErr) {
		return OutcomeFatal, 0
	}

	switch remoteErr.Code {
	case CodeRateLimited:
		return OutcomeRetry, remoteErr.RetryAfter
	case CodeZoneNotFound:
		return OutcomeZoneMissing, 0
	case CodeZoneDeleted:
		return OutcomeZoneDeleted, 0
	case CodeTokenExpired:
		return OutcomeTokenExpired, 0
	case CodeConflict:
		return OutcomeConflict, 0
	case CodeBatchTooLarge:
		return OutcomeBatchTooLarge, 0
	case CodePartialFailure:
		// Item failures can hide a zone-level condition. Promote those so
		// the zone client runs its recreate or catastrophic path instead of
		// treating the batch as partially applied.
		for _, itemErr := range remoteErr.ItemErrors {
			if outcome, wait := Classify(itemErr); outcome == OutcomeZoneMissing || outcome == OutcomeZoneDeleted {
				return outcome, wait
			}
		}
		return OutcomePartialFailure, 0
	default:
		return OutcomeFatal, 0
	}
}
