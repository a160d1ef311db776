// ABOUTME: This file implements the zone client for one remote record store partition
// ABOUTME: Every operation classifies failures and self-retries per the engine's retry table

package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"feed-sync-engine/models"
)

// defaultBatchLimit is the remote store's per-request item cap. Batches
// beyond it are split and submitted as independent sub-batches.
const defaultBatchLimit = 300

// ZoneClient wraps one zone of a remote record store with the engine's
// retry, recreate and chunking policies. It owns the zone's change-token
// cursor.
type ZoneClient struct {
	zone       string
	store      Store
	tokens     TokenStore
	logger     *slog.Logger
	batchLimit int
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewZoneClient creates a client for the named zone.
func NewZoneClient(zone string, store Store, tokens TokenStore, logger *slog.Logger) *ZoneClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ZoneClient{
		zone:       zone,
		store:      store,
		tokens:     tokens,
		logger:     logger,
		batchLimit: defaultBatchLimit,
		sleep:      sleepContext,
	}
}

// SetBatchLimit overrides the per-request item cap.
func (c *ZoneClient) SetBatchLimit(limit int) {
	if limit > 0 {
		c.batchLimit = limit
	}
}

// Zone returns the zone name this client operates on.
func (c *ZoneClient) Zone() string {
	return c.zone
}

// CreateZone provisions the remote zone.
func (c *ZoneClient) CreateZone(ctx context.Context) error {
	if err := c.store.CreateZone(ctx, c.zone); err != nil {
		return fmt.Errorf("failed to create zone %s: %w", c.zone, err)
	}
	return nil
}

// ResetToken discards the persisted change-token cursor, so the next fetch
// replays the zone's history from the beginning.
func (c *ZoneClient) ResetToken(ctx context.Context) error {
	if err := c.tokens.ClearToken(ctx, c.zone); err != nil {
		return fmt.Errorf("failed to clear change token for zone %s: %w", c.zone, err)
	}
	return nil
}

// Save writes records, self-retrying on rate limits, creating the zone once
// when missing, and chunking when the batch exceeds the item cap.
func (c *ZoneClient) Save(ctx context.Context, records []models.RemoteRecord) error {
	if len(records) == 0 {
		return nil
	}

	zoneCreated := false
	for {
		err := c.store.Save(ctx, c.zone, records)
		outcome, wait := Classify(err)

		switch outcome {
		case OutcomeSuccess:
			return nil
		case OutcomeRetry:
			c.logger.Warn("zone save rate limited",
				"zone", c.zone,
				"retry_after", wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
		case OutcomeZoneMissing:
			if zoneCreated {
				return fmt.Errorf("zone %s still missing after create: %w", c.zone, err)
			}
			if createErr := c.CreateZone(ctx); createErr != nil {
				return createErr
			}
			zoneCreated = true
		case OutcomeZoneDeleted:
			return fmt.Errorf("zone %s save: %w", c.zone, ErrZoneDeletedByUser)
		case OutcomeBatchTooLarge:
			return c.saveChunked(ctx, records)
		default:
			return fmt.Errorf("zone %s save failed: %w", c.zone, err)
		}
	}
}

// SaveIfUnchanged writes records only where the local version still matches
// the server's. A conflicting batch surfaces ErrConflict and is not retried;
// a partial failure whose item errors are all conflicts counts as success,
// because the newer server records will arrive through the next change
// fetch anyway.
func (c *ZoneClient) SaveIfUnchanged(ctx context.Context, records []models.RemoteRecord) error {
	if len(records) == 0 {
		return nil
	}

	zoneCreated := false
	for {
		err := c.store.SaveIfUnchanged(ctx, c.zone, records)
		outcome, wait := Classify(err)

		switch outcome {
		case OutcomeSuccess:
			return nil
		case OutcomePartialFailure:
			c.logger.Debug("conditional save skipped changed records",
				"zone", c.zone,
				"skipped", partialItemCount(err))
			return nil
		case OutcomeRetry:
			c.logger.Warn("zone conditional save rate limited",
				"zone", c.zone,
				"retry_after", wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
		case OutcomeZoneMissing:
			if zoneCreated {
				return fmt.Errorf("zone %s still missing after create: %w", c.zone, err)
			}
			if createErr := c.CreateZone(ctx); createErr != nil {
				return createErr
			}
			zoneCreated = true
		case OutcomeZoneDeleted:
			return fmt.Errorf("zone %s conditional save: %w", c.zone, ErrZoneDeletedByUser)
		case OutcomeConflict:
			return fmt.Errorf("zone %s conditional save: %w", c.zone, ErrConflict)
		case OutcomeBatchTooLarge:
			var g errgroup.Group
			for _, part := range chunk(records, c.batchLimit) {
				part := part
				g.Go(func() error {
					return c.SaveIfUnchanged(ctx, part)
				})
			}
			return g.Wait()
		default:
			return fmt.Errorf("zone %s conditional save failed: %w", c.zone, err)
		}
	}
}

// Delete removes records by id with the same retry and chunking policy as
// Save.
func (c *ZoneClient) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	zoneCreated := false
	for {
		err := c.store.Delete(ctx, c.zone, ids)
		outcome, wait := Classify(err)

		switch outcome {
		case OutcomeSuccess:
			return nil
		case OutcomeRetry:
			c.logger.Warn("zone delete rate limited",
				"zone", c.zone,
				"retry_after", wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
		case OutcomeZoneMissing:
			if zoneCreated {
				return fmt.Errorf("zone %s still missing after create: %w", c.zone, err)
			}
			if createErr := c.CreateZone(ctx); createErr != nil {
				return createErr
			}
			zoneCreated = true
		case OutcomeZoneDeleted:
			return fmt.Errorf("zone %s delete: %w", c.zone, ErrZoneDeletedByUser)
		case OutcomeBatchTooLarge:
			var g errgroup.Group
			for _, part := range chunk(ids, c.batchLimit) {
				part := part
				g.Go(func() error {
					return c.Delete(ctx, part)
				})
			}
			return g.Wait()
		default:
			return fmt.Errorf("zone %s delete failed: %w", c.zone, err)
		}
	}
}

// Query returns the zone's records of one type matching the predicate.
func (c *ZoneClient) Query(ctx context.Context, recordType models.RecordType, match func(models.RemoteRecord) bool) ([]models.RemoteRecord, error) {
	zoneCreated := false
	for {
		records, err := c.store.Query(ctx, c.zone, recordType, match)
		outcome, wait := Classify(err)

		switch outcome {
		case OutcomeSuccess:
			return records, nil
		case OutcomeRetry:
			c.logger.Warn("zone query rate limited",
				"zone", c.zone,
				"retry_after", wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return nil, sleepErr
			}
		case OutcomeZoneMissing:
			if zoneCreated {
				return nil, fmt.Errorf("zone %s still missing after create: %w", c.zone, err)
			}
			if createErr := c.CreateZone(ctx); createErr != nil {
				return nil, createErr
			}
			zoneCreated = true
		case OutcomeZoneDeleted:
			return nil, fmt.Errorf("zone %s query: %w", c.zone, ErrZoneDeletedByUser)
		default:
			return nil, fmt.Errorf("zone %s query failed: %w", c.zone, err)
		}
	}
}

// FetchChanges pulls all changes after the persisted cursor and hands them
// to the handler. The cursor advances only after the handler returns nil, so
// a failed application replays the same batch on the next fetch. An expired
// cursor restarts the fetch from the beginning; re-delivered changes must be
// idempotent to apply.
func (c *ZoneClient) FetchChanges(ctx context.Context, apply ChangeHandler) error {
	token, err := c.tokens.Token(ctx, c.zone)
	if err != nil {
		return fmt.Errorf("failed to load change token for zone %s: %w", c.zone, err)
	}

	zoneCreated := false
	for {
		set, err := c.store.FetchChanges(ctx, c.zone, token)
		outcome, wait := Classify(err)

		switch outcome {
		case OutcomeSuccess:
			if applyErr := apply(ctx, set.Changed, set.Deleted); applyErr != nil {
				return fmt.Errorf("zone %s change batch was not applied: %w", c.zone, applyErr)
			}
			if setErr := c.tokens.SetToken(ctx, c.zone, set.Token); setErr != nil {
				return fmt.Errorf("failed to persist change token for zone %s: %w", c.zone, setErr)
			}
			return nil
		case OutcomeRetry:
			c.logger.Warn("zone change fetch rate limited",
				"zone", c.zone,
				"retry_after", wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
		case OutcomeZoneMissing:
			if zoneCreated {
				return fmt.Errorf("zone %s still missing after create: %w", c.zone, err)
			}
			if createErr := c.CreateZone(ctx); createErr != nil {
				return createErr
			}
			zoneCreated = true
			token = ""
		case OutcomeTokenExpired:
			c.logger.Warn("change token expired, refetching zone from the beginning",
				"zone", c.zone)
			if clearErr := c.tokens.ClearToken(ctx, c.zone); clearErr != nil {
				return fmt.Errorf("failed to clear expired change token for zone %s: %w", c.zone, clearErr)
			}
			token = ""
		case OutcomeZoneDeleted:
			return fmt.Errorf("zone %s change fetch: %w", c.zone, ErrZoneDeletedByUser)
		default:
			return fmt.Errorf("zone %s change fetch failed: %w", c.zone, err)
		}
	}
}

func (c *ZoneClient) saveChunked(ctx context.Context, records []models.RemoteRecord) error {
	c.logger.Debug("splitting oversized save batch",
		"zone", c.zone,
		"records", len(records),
		"limit", c.batchLimit)

	// Sub-batches run independently: a failed piece fails the whole call,
	// but pieces already applied stay applied. Record writes are idempotent
	// per id, so the caller can simply resubmit.
	var g errgroup.Group
	for _, part := range chunk(records, c.batchLimit) {
		part := part
		g.Go(func() error {
			return c.Save(ctx, part)
		})
	}
	return g.Wait()
}

func partialItemCount(err error) int {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return len(remoteErr.ItemErrors)
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
