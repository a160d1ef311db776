// ABOUTME: This file tests failure classification for remote store errors
// ABOUTME: Covers every outcome plus promotion of zone-level item failures

package remote

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		err          error
		expectedCode Outcome
		expectedWait time.Duration
	}{
		"nil_error_is_success": {
			err:          nil,
			expectedCode: OutcomeSuccess,
		},
		"rate_limited_carries_server_delay": {
			err:          &Error{Code: CodeRateLimited, RetryAfter: 7 * time.Second},
			expectedCode: OutcomeRetry,
			expectedWait: 7 * time.Second,
		},
		"zone_not_found": {
			err:          &Error{Code: CodeZoneNotFound},
			expectedCode: OutcomeZoneMissing,
		},
		"zone_deleted_by_user": {
			err:          &Error{Code: CodeZoneDeleted},
			expectedCode: OutcomeZoneDeleted,
		},
		"token_expired": {
			err:          &Error{Code: CodeTokenExpired},
			expectedCode: OutcomeTokenExpired,
		},
		"conflict": {
			err:          &Error{Code: CodeConflict},
			expectedCode: OutcomeConflict,
		},
		"batch_too_large": {
			err:          &Error{Code: CodeBatchTooLarge},
			expectedCode: OutcomeBatchTooLarge,
		},
		"partial_failure_without_zone_errors": {
			err: &Error{Code: CodePartialFailure, ItemErrors: map[string]error{
				"r1": &Error{Code: CodeConflict},
			}},
			expectedCode: OutcomePartialFailure,
		},
		"partial_failure_promotes_zone_missing": {
			err: &Error{Code: CodePartialFailure, ItemErrors: map[string]error{
				"r1": &Error{Code: CodeConflict},
				"r2": &Error{Code: CodeZoneNotFound},
			}},
			expectedCode: OutcomeZoneMissing,
		},
		"partial_failure_promotes_zone_deleted": {
			err: &Error{Code: CodePartialFailure, ItemErrors: map[string]error{
				"r1": &Error{Code: CodeZoneDeleted},
			}},
			expectedCode: OutcomeZoneDeleted,
		},
		"wrapped_remote_error_still_classifies": {
			err:          fmt.Errorf("saving: %w", &Error{Code: CodeRateLimited, RetryAfter: time.Second}),
			expectedCode: OutcomeRetry,
			expectedWait: time.Second,
		},
		"unknown_code_is_fatal": {
			err:          &Error{Code: CodeUnknown},
			expectedCode: OutcomeFatal,
		},
		"plain_error_is_fatal": {
			err:          errors.New("connection reset"),
			expectedCode: OutcomeFatal,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			outcome, wait := Classify(tc.err)
			assert.Equal(t, tc.expectedCode, outcome)
			assert.Equal(t, tc.expectedWait, wait)
		})
	}
}
