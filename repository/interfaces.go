// ABOUTME: Repository layer common interfaces for the sync engine
// ABOUTME: Defines contracts for the pending-mutation ledger and consumed local storage

package repository

import (
	"context"

	"feed-sync-engine/models"
)

// PendingMutationLedger is the durable queue of not-yet-acknowledged status
// mutations. SelectForProcessing must be atomic with respect to concurrent
// inserts and other reservations: two concurrent calls never reserve the
// same row.
type PendingMutationLedger interface {
	// Insert queues mutations. A newer mutation of the same kind for the
	// same article overwrites the older row and clears its reservation.
	Insert(ctx context.Context, mutations []models.PendingMutation) error

	// SelectForProcessing atomically reserves up to limit unreserved rows.
	SelectForProcessing(ctx context.Context, limit int) ([]models.PendingMutation, error)

	// ReleaseProcessed deletes the reserved rows for the given articles.
	ReleaseProcessed(ctx context.Context, articleIDs []string) error

	// Requeue clears the reservation on rows for the given articles,
	// keeping them pending.
	Requeue(ctx context.Context, articleIDs []string) error

	// Discard deletes all rows for the given articles, reserved or not.
	// Used when the articles themselves were deleted remotely.
	Discard(ctx context.Context, articleIDs []string) error

	// PendingCount reports how many rows are queued, reserved or not.
	PendingCount(ctx context.Context) (int, error)

	// PendingArticleIDs returns the set of article IDs with a pending
	// mutation of the given kind, reserved or not.
	PendingArticleIDs(ctx context.Context, kind models.MutationKind) (map[string]bool, error)
}

// ArticleChanges reports the effect of one feed upsert.
type ArticleChanges struct {
	New     []models.Article
	Updated []models.Article
	Deleted []models.Article
}

// LocalStore is the consumed local article/feed/folder database. The engine
// never owns its schema; it only drives these operations. Lookup methods
// return (nil, nil) when the entity does not exist.
type LocalStore interface {
	ArticlesByID(ctx context.Context, articleIDs []string) ([]models.Article, error)
	UpsertFeedArticles(ctx context.Context, feedURL string, articles []models.Article) (*ArticleChanges, error)
	DeleteArticles(ctx context.Context, articleIDs []string) error

	MarkRead(ctx context.Context, articleIDs []string) error
	MarkUnread(ctx context.Context, articleIDs []string) error
	MarkStarred(ctx context.Context, articleIDs []string) error
	MarkUnstarred(ctx context.Context, articleIDs []string) error

	FolderByExternalID(ctx context.Context, externalID string) (*models.Folder, error)
	EnsureFolder(ctx context.Context, name, externalID string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, externalID string) error

	FeedByExternalID(ctx context.Context, externalID string) (*models.Feed, error)
	CreateFeed(ctx context.Context, feed *models.Feed, folderExternalID string) error
	UpdateFeed(ctx context.Context, feed *models.Feed) error
	FeedFolderExternalIDs(ctx context.Context, feedExternalID string) ([]string, error)
	AddFeedToFolder(ctx context.Context, feedExternalID, folderExternalID string) error
	RemoveFeedFromFolder(ctx context.Context, feedExternalID, folderExternalID string) error
	RemoveFeed(ctx context.Context, feedExternalID string) error

	// RemoveAllFeedsAndFolders is the destructive cleanup run when the
	// remote zone was deleted by the user.
	RemoveAllFeedsAndFolders(ctx context.Context) error
}
