// ABOUTME: This file implements the outbound status pusher draining the pending-mutation ledger
// ABOUTME: Reserved batches become remote record operations and are released only after the server acknowledges

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"feed-sync-engine/models"
	"feed-sync-engine/remote"
	"feed-sync-engine/repository"
)

const defaultPushBatchSize = 150

// StatusPushService uploads locally queued status mutations to the articles
// zone. Each cycle reserves a ledger batch, merges the rows per article,
// applies the resulting record operations remotely, and releases the batch.
// A failed batch is requeued, so redelivery is at-least-once.
type StatusPushService struct {
	ledger    repository.PendingMutationLedger
	local     repository.LocalStore
	articles  *remote.ZoneClient
	logger    *slog.Logger
	batchSize int
}

func NewStatusPushService(
	ledger repository.PendingMutationLedger,
	local repository.LocalStore,
	articles *remote.ZoneClient,
	logger *slog.Logger,
) *StatusPushService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusPushService{
		ledger:    ledger,
		local:     local,
		articles:  articles,
		logger:    logger,
		batchSize: defaultPushBatchSize,
	}
}

// SetBatchSize overrides how many ledger rows one cycle reserves.
func (s *StatusPushService) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

// Push drains the ledger until no unreserved rows remain. Rows inserted
// while Push runs are picked up by later cycles of the same call.
func (s *StatusPushService) Push(ctx context.Context, progress *Progress) error {
	if pending, err := s.ledger.PendingCount(ctx); err == nil {
		progress.AddExpected(pending)
	}

	for {
		mutations, err := s.ledger.SelectForProcessing(ctx, s.batchSize)
		if err != nil {
			return fmt.Errorf("failed to reserve status mutations: %w", err)
		}
		if len(mutations) == 0 {
			return nil
		}

		if err := s.pushBatch(ctx, mutations); err != nil {
			ids := mutationArticleIDs(mutations)
			if requeueErr := s.ledger.Requeue(ctx, ids); requeueErr != nil {
				s.logger.Error("failed to requeue status mutations after push error",
					"error", requeueErr, "article_count", len(ids))
			}
			return err
		}
		progress.Tick(len(mutations))
	}
}

func (s *StatusPushService) pushBatch(ctx context.Context, mutations []models.PendingMutation) error {
	ids := mutationArticleIDs(mutations)
	articles, err := s.local.ArticlesByID(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load articles for status push: %w", err)
	}

	updates, orphanIDs := models.MergeStatusUpdates(mutations, articles)
	if len(orphanIDs) > 0 {
		// The articles are gone locally and carry no delete, so the rows can
		// never be satisfied. Dropping them keeps the ledger from wedging.
		s.logger.Warn("releasing status mutations for missing articles",
			"article_count", len(orphanIDs))
		if err := s.ledger.ReleaseProcessed(ctx, orphanIDs); err != nil {
			return fmt.Errorf("failed to release orphaned status mutations: %w", err)
		}
	}
	if len(updates) == 0 {
		return nil
	}

	var deleteIDs []string
	var newRecords []models.RemoteRecord
	var statusRecords []models.RemoteRecord
	var contentDeleteIDs []string
	released := make([]string, 0, len(updates))

	for _, u := range updates {
		released = append(released, u.ArticleID)
		switch u.RecordKind() {
		case models.RecordMutationDelete:
			deleteIDs = append(deleteIDs,
				models.StatusRecordID(u.ArticleID),
				models.ArticleRecordID(u.ArticleID))
		case models.RecordMutationNew:
			newRecords = append(newRecords,
				u.Article.ArticleRecord(),
				models.StatusRecord(u.ArticleID, u.ReadFlag(), u.StarredFlag()))
		case models.RecordMutationStatusOnly:
			statusRecords = append(statusRecords,
				models.StatusRecord(u.ArticleID, u.ReadFlag(), u.StarredFlag()))
			contentDeleteIDs = append(contentDeleteIDs, models.ArticleRecordID(u.ArticleID))
		}
	}

	if len(deleteIDs) > 0 {
		if err := s.articles.Delete(ctx, deleteIDs); err != nil {
			return fmt.Errorf("failed to delete article records: %w", err)
		}
	}
	if len(newRecords) > 0 {
		err := s.articles.SaveIfUnchanged(ctx, newRecords)
		if errors.Is(err, remote.ErrConflict) {
			// Every record already exists with newer server state, so there
			// is nothing left to push; the next change fetch delivers it.
			s.logger.Debug("full-record push superseded by server state",
				"records", len(newRecords))
			err = nil
		}
		if err != nil {
			return fmt.Errorf("failed to save new article records: %w", err)
		}
	}
	if len(statusRecords) > 0 {
		if err := s.articles.Save(ctx, statusRecords); err != nil {
			return fmt.Errorf("failed to save status records: %w", err)
		}
	}
	if len(contentDeleteIDs) > 0 {
		// Settled articles keep only their status remotely. The content
		// record is dropped once the status-only update lands.
		if err := s.articles.Delete(ctx, contentDeleteIDs); err != nil {
			return fmt.Errorf("failed to prune article content records: %w", err)
		}
	}

	if err := s.ledger.ReleaseProcessed(ctx, released); err != nil {
		return fmt.Errorf("failed to release pushed status mutations: %w", err)
	}

	s.logger.Info("pushed status mutation batch",
		"updates", len(updates),
		"deleted", len(deleteIDs)/2,
		"full_records", len(newRecords)/2,
		"status_only", len(statusRecords))
	return nil
}

func mutationArticleIDs(mutations []models.PendingMutation) []string {
	seen := make(map[string]bool, len(mutations))
	ids := make([]string, 0, len(mutations))
	for _, m := range mutations {
		if !seen[m.ArticleID] {
			seen[m.ArticleID] = true
			ids = append(ids, m.ArticleID)
		}
	}
	return ids
}
