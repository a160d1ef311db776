// ABOUTME: This file implements the sync orchestrator, the single entry point for a sync round
// ABOUTME: Push-then-pull over a dependency graph; overlapping calls are idempotent no-ops

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"feed-sync-engine/models"
	"feed-sync-engine/orchestrator"
	"feed-sync-engine/remote"
	"feed-sync-engine/repository"
	"feed-sync-engine/utils"
)

// ErrZoneDeleted is returned by Sync and Resync after the remote zone was
// deleted by the user. The engine has already removed all local feeds and
// folders and cleared its change tokens; the account must be re-provisioned
// before sync can succeed again.
var ErrZoneDeleted = errors.New("remote zone deleted by user, local account data removed")

// SyncService drives one sync round: push pending local status mutations,
// then pull remote changes from the account and articles zones. A second
// call while a round is in flight returns nil immediately rather than
// queuing behind it.
type SyncService struct {
	pusher     *StatusPushService
	mirror     *FolderMirrorService
	reconciler *ReconcileService
	account    *remote.ZoneClient
	articles   *remote.ZoneClient
	local      repository.LocalStore
	logger     *slog.Logger

	concurrency int
	onProgress  func(completed, expected int)

	syncing atomic.Bool

	mu     sync.Mutex
	window models.SyncWindow
	stats  models.SyncStats
}

func NewSyncService(
	pusher *StatusPushService,
	mirror *FolderMirrorService,
	reconciler *ReconcileService,
	account *remote.ZoneClient,
	articles *remote.ZoneClient,
	local repository.LocalStore,
	logger *slog.Logger,
) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		pusher:      pusher,
		mirror:      mirror,
		reconciler:  reconciler,
		account:     account,
		articles:    articles,
		local:       local,
		logger:      logger,
		concurrency: 4,
	}
}

// SetConcurrency bounds how many graph steps run at once.
func (s *SyncService) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// SetProgressFunc registers an observer for (completed, expected) progress
// ticks. Purely observational.
func (s *SyncService) SetProgressFunc(fn func(completed, expected int)) {
	s.onProgress = fn
}

// Window returns the last fully successful sync window.
func (s *SyncService) Window() models.SyncWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Stats returns a snapshot of sync statistics.
func (s *SyncService) Stats() models.SyncStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Sync runs one incremental round: push pending statuses, then apply both
// zones' change feeds in order, account structure before article content.
func (s *SyncService) Sync(ctx context.Context) error {
	return s.run(ctx, func(graph *orchestrator.Graph, progress *Progress) error {
		if err := graph.Add("pushPendingStatuses", nil, func(ctx context.Context) error {
			return s.pusher.Push(ctx, progress)
		}); err != nil {
			return err
		}
		if err := graph.Add("fetchAccountChanges", []string{"pushPendingStatuses"}, func(ctx context.Context) error {
			return s.account.FetchChanges(ctx, s.mirror.ApplyChanges)
		}); err != nil {
			return err
		}
		return graph.Add("fetchArticleChanges", []string{"fetchAccountChanges"}, func(ctx context.Context) error {
			err := s.articles.FetchChanges(ctx, s.reconciler.ApplyChanges)
			if err == nil {
				progress.Tick(1)
			}
			return err
		})
	})
}

// Resync runs a full round: after the push, the account zone is queried for
// all containers and feeds, the local structure is mirrored, and each
// container's article stream is fetched and reconciled on its own parallel
// graph branch. Fetches are bounded below by the last successful window
// start, so an unchanged article body is not re-pulled.
func (s *SyncService) Resync(ctx context.Context) error {
	return s.run(ctx, func(graph *orchestrator.Graph, progress *Progress) error {
		var (
			containers []models.RemoteRecord
			feeds      []models.RemoteRecord
		)
		matchAll := func(models.RemoteRecord) bool { return true }

		if err := graph.Add("pushPendingStatuses", nil, func(ctx context.Context) error {
			return s.pusher.Push(ctx, progress)
		}); err != nil {
			return err
		}
		if err := graph.Add("listContainers", []string{"pushPendingStatuses"}, func(ctx context.Context) error {
			var err error
			containers, err = s.account.Query(ctx, models.RecordTypeContainer, matchAll)
			return err
		}); err != nil {
			return err
		}
		if err := graph.Add("mirrorContainersAsFolders", []string{"listContainers"}, func(ctx context.Context) error {
			return s.mirror.ApplyChanges(ctx, containers, nil)
		}); err != nil {
			return err
		}
		if err := graph.Add("createFeedsForContainers", []string{"mirrorContainersAsFolders"}, func(ctx context.Context) error {
			var err error
			feeds, err = s.account.Query(ctx, models.RecordTypeFeed, matchAll)
			if err != nil {
				return err
			}
			return s.mirror.ApplyChanges(ctx, feeds, nil)
		}); err != nil {
			return err
		}
		// The per-container chains cannot be declared up front because the
		// container set is itself a query result, so one node fans them out
		// on a nested graph after the structural steps complete.
		if err := graph.Add("syncContainerStreams", []string{"createFeedsForContainers"}, func(ctx context.Context) error {
			return s.syncContainerStreams(ctx, containers, feeds, progress)
		}); err != nil {
			return err
		}
		return graph.Add("recordSyncWindowEnd", []string{"syncContainerStreams"}, func(ctx context.Context) error {
			return nil
		})
	})
}

// run wraps one sync round: in-flight guard, graph execution, window commit,
// stats, and the catastrophic zone-deletion recovery path.
func (s *SyncService) run(ctx context.Context, build func(*orchestrator.Graph, *Progress) error) error {
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Info("sync already in progress, skipping")
		return nil
	}
	defer s.syncing.Store(false)

	startedAt := time.Now()
	progress := NewProgress(s.onProgress)
	progress.AddExpected(1)

	graph := orchestrator.New(s.logger)
	graph.SetConcurrency(s.concurrency)
	if err := build(graph, progress); err != nil {
		return fmt.Errorf("failed to build sync graph: %w", err)
	}

	err := graph.Run(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrZoneDeletedByUser) {
			return s.recoverFromZoneDeletion(ctx, err)
		}
		s.recordOutcome(startedAt, err)
		return err
	}

	s.mu.Lock()
	s.window = models.SyncWindow{StartedAt: startedAt, EndedAt: time.Now()}
	s.mu.Unlock()
	s.recordOutcome(startedAt, nil)
	s.logger.Info("sync completed", "duration", time.Since(startedAt))
	return nil
}

// syncContainerStreams runs one chain per container, in parallel:
// fetch the container's article stream, upsert by feed, then apply the
// fetched articles' status records.
func (s *SyncService) syncContainerStreams(ctx context.Context, containers, feeds []models.RemoteRecord, progress *Progress) error {
	feedURLsByContainer := groupFeedURLsByContainer(feeds)
	window := s.Window()

	graph := orchestrator.New(s.logger)
	graph.SetConcurrency(s.concurrency)
	progress.AddExpected(len(containers))

	for _, container := range containers {
		containerID := container.ID
		feedURLs := feedURLsByContainer[containerID]
		stream := &containerStream{}

		fetchStep := "fetchStream/" + containerID
		upsertStep := "upsertFeedArticles/" + containerID
		reconcileStep := "reconcileReadState/" + containerID

		if err := graph.Add(fetchStep, nil, func(ctx context.Context) error {
			return stream.fetch(ctx, s.articles, feedURLs, window.StartedAt)
		}); err != nil {
			return err
		}
		if err := graph.Add(upsertStep, []string{fetchStep}, func(ctx context.Context) error {
			return s.reconciler.ApplyChanges(ctx, stream.articles, nil)
		}); err != nil {
			return err
		}
		if err := graph.Add(reconcileStep, []string{upsertStep}, func(ctx context.Context) error {
			statuses, err := stream.fetchStatuses(ctx, s.articles)
			if err != nil {
				return err
			}
			if err := s.reconciler.ApplyChanges(ctx, statuses, nil); err != nil {
				return err
			}
			progress.Tick(1)
			return nil
		}); err != nil {
			return err
		}
	}

	return graph.Run(ctx)
}

// recoverFromZoneDeletion runs the destructive cleanup path: all local
// feeds and folders are removed and both zones' change tokens cleared, so
// the next sync against a re-provisioned account starts from nothing. The
// returned error is distinct from ordinary sync failure.
func (s *SyncService) recoverFromZoneDeletion(ctx context.Context, cause error) error {
	s.logger.Error("remote zone was deleted by user, removing local account data", "error", cause)

	if err := s.local.RemoveAllFeedsAndFolders(ctx); err != nil {
		return fmt.Errorf("failed to remove local account data after zone deletion: %w", err)
	}
	if err := s.account.ResetToken(ctx); err != nil {
		return fmt.Errorf("failed to clear account zone token after zone deletion: %w", err)
	}
	if err := s.articles.ResetToken(ctx); err != nil {
		return fmt.Errorf("failed to clear articles zone token after zone deletion: %w", err)
	}

	s.recordOutcome(time.Now(), cause)
	return fmt.Errorf("%w: %w", ErrZoneDeleted, cause)
}

func (s *SyncService) recordOutcome(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.LastSyncTime = at
	s.stats.TotalSyncs++
	if err != nil {
		s.stats.FailedSyncs++
		s.stats.LastError = err.Error()
	} else {
		s.stats.SuccessfulSyncs++
		s.stats.LastError = ""
	}
}

// containerStream holds one container branch's fetched article records
// between its graph steps.
type containerStream struct {
	articles []models.RemoteRecord
}

// fetch queries the container's article records, bounded below by the last
// successful sync start when one exists.
func (c *containerStream) fetch(ctx context.Context, zone *remote.ZoneClient, feedURLs map[string]bool, newerThan time.Time) error {
	records, err := zone.Query(ctx, models.RecordTypeArticle, func(r models.RemoteRecord) bool {
		if !feedURLs[utils.NormalizeFeedURL(r.StringField(models.FieldFeedURL))] {
			return false
		}
		if newerThan.IsZero() {
			return true
		}
		published := r.TimeField(models.FieldDatePublished)
		modified := r.TimeField(models.FieldDateModified)
		return published.After(newerThan) || modified.After(newerThan)
	})
	if err != nil {
		return err
	}
	c.articles = records
	return nil
}

// fetchStatuses queries the status records belonging to the fetched
// articles. Statuses of older articles arrive through the incremental
// change feed instead.
func (c *containerStream) fetchStatuses(ctx context.Context, zone *remote.ZoneClient) ([]models.RemoteRecord, error) {
	articleIDs := make(map[string]bool, len(c.articles))
	for _, r := range c.articles {
		articleIDs[models.StripRecordPrefix(r.ID)] = true
	}
	if len(articleIDs) == 0 {
		return nil, nil
	}
	return zone.Query(ctx, models.RecordTypeArticleStatus, func(r models.RemoteRecord) bool {
		return articleIDs[r.StringField(models.FieldArticleID)]
	})
}

// groupFeedURLsByContainer buckets the feeds' normalized URLs per container,
// so an article record written with a cosmetically different feed URL still
// lands in the right container stream.
func groupFeedURLsByContainer(feeds []models.RemoteRecord) map[string]map[string]bool {
	byContainer := make(map[string]map[string]bool)
	for _, feed := range feeds {
		url := utils.NormalizeFeedURL(feed.StringField(models.FieldURL))
		if url == "" {
			continue
		}
		for _, containerID := range feed.StringsField(models.FieldContainerExternalIDs) {
			if byContainer[containerID] == nil {
				byContainer[containerID] = make(map[string]bool)
			}
			byContainer[containerID][url] = true
		}
	}
	return byContainer
}
