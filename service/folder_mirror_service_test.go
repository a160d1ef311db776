// ABOUTME: This file tests the container/folder mirror and its unclaimed feed buffer
// ABOUTME: Covers out-of-order arrival, membership patching and deletions

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feed-sync-engine/mocks"
	"feed-sync-engine/models"
)

func containerRecord(id, name string) models.RemoteRecord {
	return models.RemoteRecord{
		ID:   id,
		Type: models.RecordTypeContainer,
		Fields: map[string]any{
			models.FieldName: name,
		},
	}
}

func feedRecord(id, url, name string, containerIDs ...string) models.RemoteRecord {
	return models.RemoteRecord{
		ID:   id,
		Type: models.RecordTypeFeed,
		Fields: map[string]any{
			models.FieldURL:                  url,
			models.FieldName:                 name,
			models.FieldContainerExternalIDs: containerIDs,
		},
	}
}

func TestMirrorCreatesFolderForContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)

	local.EXPECT().EnsureFolder(gomock.Any(), "Tech", "C1").
		Return(models.NewFolder("Tech", "C1"), nil)

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(context.Background(), []models.RemoteRecord{
		containerRecord("C1", "Tech"),
	}, nil))
}

func TestMirrorSkipsAccountRootContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)

	record := containerRecord("root", "account")
	record.Fields[models.FieldIsAccount] = "1"

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(context.Background(), []models.RemoteRecord{record}, nil))
}

func TestMirrorUnclaimedFeedScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	svc := NewFolderMirrorService(local, nil)
	ctx := context.Background()

	// The feed references container C1 before C1 exists: it is buffered,
	// not created.
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(nil, nil)
	local.EXPECT().FolderByExternalID(ctx, "C1").Return(nil, nil)

	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		feedRecord("F1", "https://example.com/feed", "Example", "C1"),
	}, nil))
	assert.Equal(t, 1, svc.UnclaimedCount())

	// C1 arrives: the folder is created and the buffered feed replayed.
	local.EXPECT().EnsureFolder(ctx, "Tech", "C1").
		Return(models.NewFolder("Tech", "C1"), nil)
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(nil, nil)
	local.EXPECT().CreateFeed(ctx, gomock.Any(), "C1").
		DoAndReturn(func(_ context.Context, feed *models.Feed, _ string) error {
			assert.Equal(t, "F1", feed.ExternalID)
			assert.Equal(t, "https://example.com/feed", feed.URL)
			return nil
		})

	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		containerRecord("C1", "Tech"),
	}, nil))
	assert.Equal(t, 0, svc.UnclaimedCount(), "replayed feeds leave the buffer")

	// C1 arrives a second time: the buffer is empty, so no duplicate feed
	// is created.
	local.EXPECT().EnsureFolder(ctx, "Tech", "C1").
		Return(models.NewFolder("Tech", "C1"), nil)

	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		containerRecord("C1", "Tech"),
	}, nil))
}

func TestMirrorSameBatchContainerAndFeedAvoidsBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	ctx := context.Background()

	// Containers apply before feeds inside one batch, so the feed finds
	// its folder immediately.
	local.EXPECT().EnsureFolder(ctx, "Tech", "C1").
		Return(models.NewFolder("Tech", "C1"), nil)
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(nil, nil)
	local.EXPECT().FolderByExternalID(ctx, "C1").
		Return(models.NewFolder("Tech", "C1"), nil)
	local.EXPECT().CreateFeed(ctx, gomock.Any(), "C1").Return(nil)

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		feedRecord("F1", "https://example.com/feed", "Example", "C1"),
		containerRecord("C1", "Tech"),
	}, nil))
	assert.Equal(t, 0, svc.UnclaimedCount())
}

func TestMirrorPatchesFeedMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	ctx := context.Background()

	existing := models.NewFeed("https://example.com/feed", "Example", "", "", "F1")

	// Declared containers are C1 and C2; locally the feed sits in C2 and
	// C3. Expect one add (C1) and one remove (C3).
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(existing, nil)
	local.EXPECT().UpdateFeed(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, feed *models.Feed) error {
			assert.Equal(t, "Renamed", feed.Name)
			return nil
		})
	local.EXPECT().FeedFolderExternalIDs(ctx, "F1").Return([]string{"C2", "C3"}, nil)
	local.EXPECT().FolderByExternalID(ctx, "C1").Return(models.NewFolder("Tech", "C1"), nil)
	local.EXPECT().AddFeedToFolder(ctx, "F1", "C1").Return(nil)
	local.EXPECT().RemoveFeedFromFolder(ctx, "F1", "C3").Return(nil)

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		feedRecord("F1", "https://example.com/feed", "Renamed", "C1", "C2"),
	}, nil))
}

func TestMirrorDeletesFolderAndFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	ctx := context.Background()

	local.EXPECT().DeleteFolder(ctx, "C1").Return(nil)
	local.EXPECT().RemoveFeed(ctx, "F1").Return(nil)

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(ctx, nil, []models.RecordKey{
		{Type: models.RecordTypeContainer, ID: "C1"},
		{Type: models.RecordTypeFeed, ID: "F1"},
	}))
}

func TestMirrorContainerDeletionDropsUnclaimedFeeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	svc := NewFolderMirrorService(local, nil)
	ctx := context.Background()

	local.EXPECT().FeedByExternalID(ctx, "F1").Return(nil, nil)
	local.EXPECT().FolderByExternalID(ctx, "C1").Return(nil, nil)
	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		feedRecord("F1", "https://example.com/feed", "Example", "C1"),
	}, nil))
	require.Equal(t, 1, svc.UnclaimedCount())

	// The container its buffered feed was waiting on gets deleted: the
	// buffer entry is dropped with it.
	local.EXPECT().DeleteFolder(ctx, "C1").Return(nil)
	require.NoError(t, svc.ApplyChanges(ctx, nil, []models.RecordKey{
		{Type: models.RecordTypeContainer, ID: "C1"},
	}))
	assert.Equal(t, 0, svc.UnclaimedCount())
}

func TestMirrorBufferedMembershipKeepsFeedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalStore(ctrl)
	ctx := context.Background()

	existing := models.NewFeed("https://example.com/feed", "Example", "", "", "F1")

	// The feed exists locally but declares a container that has not been
	// mirrored yet, so the membership is buffered.
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(existing, nil)
	local.EXPECT().UpdateFeed(ctx, gomock.Any()).Return(nil)
	local.EXPECT().FeedFolderExternalIDs(ctx, "F1").Return(nil, nil)
	local.EXPECT().FolderByExternalID(ctx, "C1").Return(nil, nil)

	svc := NewFolderMirrorService(local, nil)
	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		feedRecord("F1", "https://example.com/feed", "Example", "C1"),
	}, nil))
	assert.Equal(t, 1, svc.UnclaimedCount())

	// The feed is removed locally before the container arrives. The replay
	// must recreate it from the buffered record, fields intact, not as an
	// empty shell.
	local.EXPECT().EnsureFolder(ctx, "Tech", "C1").Return(models.NewFolder("Tech", "C1"), nil)
	local.EXPECT().FeedByExternalID(ctx, "F1").Return(nil, nil)
	local.EXPECT().CreateFeed(ctx, gomock.Any(), "C1").
		DoAndReturn(func(_ context.Context, feed *models.Feed, _ string) error {
			assert.Equal(t, "https://example.com/feed", feed.URL)
			assert.Equal(t, "Example", feed.Name)
			return nil
		})

	require.NoError(t, svc.ApplyChanges(ctx, []models.RemoteRecord{
		containerRecord("C1", "Tech"),
	}, nil))
	assert.Equal(t, 0, svc.UnclaimedCount())
}
