// ABOUTME: This file implements inbound reconciliation of remote article and status changes
// ABOUTME: Unacknowledged local mutations always win over remote values until they are pushed

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"feed-sync-engine/models"
	"feed-sync-engine/repository"
)

// ReconcileService applies a batch of changed and deleted article records to
// local storage. Articles with a pending local read or starred mutation are
// excluded from the corresponding remote status set, so a stale remote echo
// never overwrites a newer local edit. The whole batch is idempotent: a
// caller may deliver the same batch twice after a mid-apply failure.
type ReconcileService struct {
	ledger repository.PendingMutationLedger
	local  repository.LocalStore
	logger *slog.Logger
}

func NewReconcileService(
	ledger repository.PendingMutationLedger,
	local repository.LocalStore,
	logger *slog.Logger,
) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{ledger: ledger, local: local, logger: logger}
}

// ApplyChanges reconciles one change batch. All independent status applies
// run even when an earlier one fails; the result aggregates every failure,
// and any failure means the caller must not advance its change token.
func (s *ReconcileService) ApplyChanges(ctx context.Context, changed []models.RemoteRecord, deleted []models.RecordKey) error {
	pendingRead, err := s.ledger.PendingArticleIDs(ctx, models.KindRead)
	if err != nil {
		return fmt.Errorf("failed to load pending read set: %w", err)
	}
	pendingStarred, err := s.ledger.PendingArticleIDs(ctx, models.KindStarred)
	if err != nil {
		return fmt.Errorf("failed to load pending starred set: %w", err)
	}

	var readIDs, unreadIDs, starredIDs, unstarredIDs []string
	articlesByFeed := make(map[string][]models.Article)

	for _, r := range changed {
		switch r.Type {
		case models.RecordTypeArticleStatus:
			articleID := r.StringField(models.FieldArticleID)
			if articleID == "" {
				articleID = models.StripRecordPrefix(r.ID)
			}
			if read, ok := r.BoolFlagField(models.FieldRead); ok && !pendingRead[articleID] {
				if read {
					readIDs = append(readIDs, articleID)
				} else {
					unreadIDs = append(unreadIDs, articleID)
				}
			}
			if starred, ok := r.BoolFlagField(models.FieldStarred); ok && !pendingStarred[articleID] {
				if starred {
					starredIDs = append(starredIDs, articleID)
				} else {
					unstarredIDs = append(unstarredIDs, articleID)
				}
			}
		case models.RecordTypeArticle:
			if article, ok := models.ArticleFromRecord(r); ok {
				articlesByFeed[article.FeedURL] = append(articlesByFeed[article.FeedURL], article)
			}
		}
	}

	var errs []error
	applyStatus := func(ids []string, apply func(context.Context, []string) error, op string) {
		if len(ids) == 0 {
			return
		}
		if err := apply(ctx, ids); err != nil {
			errs = append(errs, fmt.Errorf("failed to %s %d articles: %w", op, len(ids), err))
		}
	}
	applyStatus(readIDs, s.local.MarkRead, "mark read")
	applyStatus(unreadIDs, s.local.MarkUnread, "mark unread")
	applyStatus(starredIDs, s.local.MarkStarred, "mark starred")
	applyStatus(unstarredIDs, s.local.MarkUnstarred, "mark unstarred")

	if err := s.applyDeletions(ctx, deleted, pendingStarred); err != nil {
		errs = append(errs, err)
	}

	for feedURL, articles := range articlesByFeed {
		if err := s.upsertFeedArticles(ctx, feedURL, articles); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// applyDeletions removes locally the articles whose status records were
// deleted remotely, except articles a pending starred mutation still claims.
// Those survive; the eventual push of the starred mutation re-creates their
// remote records.
func (s *ReconcileService) applyDeletions(ctx context.Context, deleted []models.RecordKey, pendingStarred map[string]bool) error {
	var deleteIDs []string
	for _, key := range deleted {
		if key.Type != models.RecordTypeArticleStatus {
			continue
		}
		articleID := models.StripRecordPrefix(key.ID)
		if pendingStarred[articleID] {
			s.logger.Debug("keeping remotely deleted article with pending starred mutation",
				"article_id", articleID)
			continue
		}
		deleteIDs = append(deleteIDs, articleID)
	}
	if len(deleteIDs) == 0 {
		return nil
	}

	if err := s.local.DeleteArticles(ctx, deleteIDs); err != nil {
		return fmt.Errorf("failed to delete articles: %w", err)
	}
	if err := s.ledger.Discard(ctx, deleteIDs); err != nil {
		return fmt.Errorf("failed to discard mutations for deleted articles: %w", err)
	}
	return nil
}

// upsertFeedArticles writes one feed's changed articles and queues outbound
// delete mutations for any article the upsert itself superseded, so those
// deletions propagate back out on the next push.
func (s *ReconcileService) upsertFeedArticles(ctx context.Context, feedURL string, articles []models.Article) error {
	changes, err := s.local.UpsertFeedArticles(ctx, feedURL, articles)
	if err != nil {
		return fmt.Errorf("failed to upsert articles for feed %s: %w", feedURL, err)
	}
	if changes == nil || len(changes.Deleted) == 0 {
		return nil
	}

	mutations := make([]models.PendingMutation, 0, len(changes.Deleted))
	for _, article := range changes.Deleted {
		mutations = append(mutations, models.PendingMutation{
			ArticleID: article.ID,
			Kind:      models.KindDeleted,
			Flag:      true,
		})
	}
	if err := s.ledger.Insert(ctx, mutations); err != nil {
		return fmt.Errorf("failed to queue deletions for superseded articles: %w", err)
	}
	return nil
}
