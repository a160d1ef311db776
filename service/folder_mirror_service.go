// ABOUTME: This file mirrors remote container and feed records into local folders and feeds
// ABOUTME: Feeds arriving before their container are buffered and replayed when the container shows up

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"feed-sync-engine/models"
	"feed-sync-engine/repository"
)

// FolderMirrorService keeps the local folder/feed structure consistent with
// remote container and feed records. The unclaimed buffer lives for the
// process only; an unclaimed feed whose container never arrives is dropped
// at restart and re-delivered by the next full resync.
type FolderMirrorService struct {
	local  repository.LocalStore
	logger *slog.Logger

	mu        sync.Mutex
	unclaimed map[string][]models.UnclaimedFeed
}

func NewFolderMirrorService(local repository.LocalStore, logger *slog.Logger) *FolderMirrorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderMirrorService{
		local:     local,
		logger:    logger,
		unclaimed: make(map[string][]models.UnclaimedFeed),
	}
}

// ApplyChanges mirrors one change batch of container and feed records.
// Containers are applied before feeds so a feed and its container arriving
// in the same batch never hit the unclaimed buffer.
func (s *FolderMirrorService) ApplyChanges(ctx context.Context, changed []models.RemoteRecord, deleted []models.RecordKey) error {
	var errs []error

	for _, r := range changed {
		if r.Type != models.RecordTypeContainer {
			continue
		}
		if err := s.applyContainer(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range changed {
		if r.Type != models.RecordTypeFeed {
			continue
		}
		if err := s.applyFeed(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range deleted {
		if err := s.applyDeletion(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// UnclaimedCount reports how many feeds are buffered awaiting a container.
func (s *FolderMirrorService) UnclaimedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, feeds := range s.unclaimed {
		count += len(feeds)
	}
	return count
}

func (s *FolderMirrorService) applyContainer(ctx context.Context, r models.RemoteRecord) error {
	// The account root container is not a folder.
	if isAccount, _ := r.BoolFlagField(models.FieldIsAccount); isAccount {
		return nil
	}
	name := r.StringField(models.FieldName)
	if _, err := s.local.EnsureFolder(ctx, name, r.ID); err != nil {
		return fmt.Errorf("failed to mirror container %s: %w", r.ID, err)
	}
	return s.replayUnclaimed(ctx, r.ID)
}

func (s *FolderMirrorService) applyFeed(ctx context.Context, r models.RemoteRecord) error {
	existing, err := s.local.FeedByExternalID(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("failed to look up feed %s: %w", r.ID, err)
	}
	containerIDs := r.StringsField(models.FieldContainerExternalIDs)

	if existing != nil {
		existing.Name = r.StringField(models.FieldName)
		existing.EditedName = r.StringField(models.FieldEditedName)
		existing.HomePageURL = r.StringField(models.FieldHomePageURL)
		if err := s.local.UpdateFeed(ctx, existing); err != nil {
			return fmt.Errorf("failed to update feed %s: %w", r.ID, err)
		}
		return s.patchMembership(ctx, r, containerIDs)
	}

	created := false
	for _, containerID := range containerIDs {
		folder, err := s.local.FolderByExternalID(ctx, containerID)
		if err != nil {
			return fmt.Errorf("failed to look up folder %s: %w", containerID, err)
		}
		if folder == nil {
			s.stashUnclaimed(containerID, r)
			continue
		}
		if !created {
			feed := models.NewFeed(
				r.StringField(models.FieldURL),
				r.StringField(models.FieldName),
				r.StringField(models.FieldEditedName),
				r.StringField(models.FieldHomePageURL),
				r.ID,
			)
			if err := s.local.CreateFeed(ctx, feed, containerID); err != nil {
				return fmt.Errorf("failed to create feed %s: %w", r.ID, err)
			}
			created = true
			continue
		}
		if err := s.local.AddFeedToFolder(ctx, r.ID, containerID); err != nil {
			return fmt.Errorf("failed to add feed %s to folder %s: %w", r.ID, containerID, err)
		}
	}
	return nil
}

// patchMembership reconciles an existing feed's folder memberships against
// the record's declared container set as add/remove deltas. Declared
// containers not yet mirrored stash the full record as unclaimed, so a
// replay can still create the feed should it disappear locally first.
func (s *FolderMirrorService) patchMembership(ctx context.Context, r models.RemoteRecord, declared []string) error {
	feedExternalID := r.ID
	current, err := s.local.FeedFolderExternalIDs(ctx, feedExternalID)
	if err != nil {
		return fmt.Errorf("failed to load folder memberships for feed %s: %w", feedExternalID, err)
	}
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	declaredSet := make(map[string]bool, len(declared))
	for _, id := range declared {
		declaredSet[id] = true
	}

	for _, containerID := range declared {
		if currentSet[containerID] {
			continue
		}
		folder, err := s.local.FolderByExternalID(ctx, containerID)
		if err != nil {
			return fmt.Errorf("failed to look up folder %s: %w", containerID, err)
		}
		if folder == nil {
			s.stashUnclaimed(containerID, r)
			continue
		}
		if err := s.local.AddFeedToFolder(ctx, feedExternalID, containerID); err != nil {
			return fmt.Errorf("failed to add feed %s to folder %s: %w", feedExternalID, containerID, err)
		}
	}
	for _, containerID := range current {
		if declaredSet[containerID] {
			continue
		}
		if err := s.local.RemoveFeedFromFolder(ctx, feedExternalID, containerID); err != nil {
			return fmt.Errorf("failed to remove feed %s from folder %s: %w", feedExternalID, containerID, err)
		}
	}
	return nil
}

func (s *FolderMirrorService) applyDeletion(ctx context.Context, key models.RecordKey) error {
	switch key.Type {
	case models.RecordTypeContainer:
		s.mu.Lock()
		delete(s.unclaimed, key.ID)
		s.mu.Unlock()
		if err := s.local.DeleteFolder(ctx, key.ID); err != nil {
			return fmt.Errorf("failed to delete folder %s: %w", key.ID, err)
		}
	case models.RecordTypeFeed:
		if err := s.local.RemoveFeed(ctx, key.ID); err != nil {
			return fmt.Errorf("failed to remove feed %s: %w", key.ID, err)
		}
	}
	return nil
}

func (s *FolderMirrorService) stashUnclaimed(containerID string, r models.RemoteRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, buffered := range s.unclaimed[containerID] {
		if buffered.FeedExternalID == r.ID {
			return
		}
	}
	s.unclaimed[containerID] = append(s.unclaimed[containerID], models.UnclaimedFeed{
		ContainerExternalID: containerID,
		URL:                 r.StringField(models.FieldURL),
		Name:                r.StringField(models.FieldName),
		EditedName:          r.StringField(models.FieldEditedName),
		HomePageURL:         r.StringField(models.FieldHomePageURL),
		FeedExternalID:      r.ID,
	})
	s.logger.Debug("buffered feed awaiting container",
		"feed_external_id", r.ID, "container_external_id", containerID)
}

// replayUnclaimed creates the buffered feeds queued under a container once
// the container has been mirrored, then clears its buffer. A feed created
// in the meantime only gains the membership.
func (s *FolderMirrorService) replayUnclaimed(ctx context.Context, containerID string) error {
	s.mu.Lock()
	feeds := s.unclaimed[containerID]
	delete(s.unclaimed, containerID)
	s.mu.Unlock()

	var errs []error
	for _, u := range feeds {
		existing, err := s.local.FeedByExternalID(ctx, u.FeedExternalID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to look up buffered feed %s: %w", u.FeedExternalID, err))
			continue
		}
		if existing != nil {
			if err := s.local.AddFeedToFolder(ctx, u.FeedExternalID, containerID); err != nil {
				errs = append(errs, fmt.Errorf("failed to add buffered feed %s to folder %s: %w",
					u.FeedExternalID, containerID, err))
			}
			continue
		}
		feed := models.NewFeed(u.URL, u.Name, u.EditedName, u.HomePageURL, u.FeedExternalID)
		if err := s.local.CreateFeed(ctx, feed, containerID); err != nil {
			errs = append(errs, fmt.Errorf("failed to create buffered feed %s: %w", u.FeedExternalID, err))
			continue
		}
		s.logger.Info("created buffered feed after container arrival",
			"feed_external_id", u.FeedExternalID, "container_external_id", containerID)
	}
	return errors.Join(errs...)
}
