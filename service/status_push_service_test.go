// ABOUTME: This file tests the outbound status pusher's merge precedence and ledger handling
// ABOUTME: Uses a real in-memory remote zone with mocked ledger and local storage

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feed-sync-engine/mocks"
	"feed-sync-engine/models"
	"feed-sync-engine/remote"
)

// memTokens is an in-memory remote.TokenStore for service tests.
type memTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemTokens() *memTokens {
	return &memTokens{tokens: make(map[string]string)}
}

func (t *memTokens) Token(_ context.Context, zone string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[zone], nil
}

func (t *memTokens) SetToken(_ context.Context, zone, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[zone] = token
	return nil
}

func (t *memTokens) ClearToken(_ context.Context, zone string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tokens, zone)
	return nil
}

func newArticlesZone(t *testing.T) (*remote.ZoneClient, *remote.MemoryStore) {
	t.Helper()
	store := remote.NewMemoryStore()
	client := remote.NewZoneClient("articles", store, newMemTokens(), nil)
	require.NoError(t, client.CreateZone(context.Background()))
	return client, store
}

func TestPushMergesMutationsWithPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)

	// Three articles: a1 was deleted locally, a2 is new and starred so it
	// needs its full content uploaded, a3 settled into a read status-only
	// update.
	mutations := []models.PendingMutation{
		{ArticleID: "a1", Kind: models.KindDeleted, Flag: true, Reserved: true},
		{ArticleID: "a1", Kind: models.KindRead, Flag: true, Reserved: true},
		{ArticleID: "a2", Kind: models.KindNew, Flag: true, Reserved: true},
		{ArticleID: "a2", Kind: models.KindStarred, Flag: true, Reserved: true},
		{ArticleID: "a3", Kind: models.KindRead, Flag: true, Reserved: true},
	}
	articles := []models.Article{
		{ID: "a2", FeedURL: "https://example.com/feed", UniqueID: "u2", Title: "Two", Read: false, Starred: true},
		{ID: "a3", FeedURL: "https://example.com/feed", UniqueID: "u3", Title: "Three", Read: true},
	}

	// Seed a content record for a3 so the status-only push has something
	// to prune.
	ctx := context.Background()
	require.NoError(t, zone.Save(ctx, []models.RemoteRecord{
		(models.Article{ID: "a3", FeedURL: "https://example.com/feed", UniqueID: "u3"}).ArticleRecord(),
	}))

	ledger.EXPECT().PendingCount(gomock.Any()).Return(5, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(nil, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), gomock.InAnyOrder([]string{"a1", "a2", "a3"})).Return(articles, nil)
	ledger.EXPECT().ReleaseProcessed(gomock.Any(), gomock.InAnyOrder([]string{"a1", "a2", "a3"})).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	require.NoError(t, pusher.Push(ctx, nil))

	// a1: both records deleted remotely (delete wins over the read flag).
	_, ok := store.Record("articles", models.StatusRecordID("a1"))
	assert.False(t, ok)
	_, ok = store.Record("articles", models.ArticleRecordID("a1"))
	assert.False(t, ok)

	// a2: full content plus status uploaded.
	content, ok := store.Record("articles", models.ArticleRecordID("a2"))
	require.True(t, ok)
	assert.Equal(t, "Two", content.StringField(models.FieldTitle))
	status, ok := store.Record("articles", models.StatusRecordID("a2"))
	require.True(t, ok)
	starred, _ := status.BoolFlagField(models.FieldStarred)
	assert.True(t, starred)

	// a3: status uploaded, stale content record pruned.
	status, ok = store.Record("articles", models.StatusRecordID("a3"))
	require.True(t, ok)
	read, _ := status.BoolFlagField(models.FieldRead)
	assert.True(t, read)
	_, ok = store.Record("articles", models.ArticleRecordID("a3"))
	assert.False(t, ok)
}

func TestPushPendingFlagWinsOverStoredValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)

	// The ledger says unread even though local storage already shows the
	// article read again: the queued mutation is what gets published.
	mutations := []models.PendingMutation{
		{ArticleID: "a1", Kind: models.KindRead, Flag: false, Reserved: true},
	}
	articles := []models.Article{
		{ID: "a1", FeedURL: "https://example.com/feed", UniqueID: "u1", Read: true},
	}

	ledger.EXPECT().PendingCount(gomock.Any()).Return(1, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(nil, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), []string{"a1"}).Return(articles, nil)
	ledger.EXPECT().ReleaseProcessed(gomock.Any(), []string{"a1"}).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	require.NoError(t, pusher.Push(context.Background(), nil))

	// Unread means the full record path, and the published read flag is the
	// pending value.
	status, ok := store.Record("articles", models.StatusRecordID("a1"))
	require.True(t, ok)
	read, _ := status.BoolFlagField(models.FieldRead)
	assert.False(t, read)
}

func TestPushForceReleasesOrphanedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)

	// The ledger references an article local storage no longer holds and
	// the row carries no delete. Retrying forever cannot help; the row is
	// dropped.
	mutations := []models.PendingMutation{
		{ArticleID: "gone", Kind: models.KindRead, Flag: true, Reserved: true},
	}

	ledger.EXPECT().PendingCount(gomock.Any()).Return(1, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(nil, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), []string{"gone"}).Return(nil, nil)
	ledger.EXPECT().ReleaseProcessed(gomock.Any(), []string{"gone"}).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	require.NoError(t, pusher.Push(context.Background(), nil))

	assert.Equal(t, 0, store.RecordCount("articles"))
}

func TestPushRequeuesBatchOnRemoteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)

	mutations := []models.PendingMutation{
		{ArticleID: "a1", Kind: models.KindRead, Flag: true, Reserved: true},
	}
	articles := []models.Article{
		{ID: "a1", FeedURL: "https://example.com/feed", UniqueID: "u1", Read: true},
	}

	store.FailNext("save", &remote.Error{Code: remote.CodeUnknown, Message: "server exploded"})

	ledger.EXPECT().PendingCount(gomock.Any()).Return(1, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), []string{"a1"}).Return(articles, nil)
	ledger.EXPECT().Requeue(gomock.Any(), []string{"a1"}).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	err := pusher.Push(context.Background(), nil)
	require.Error(t, err)
}

func TestPushSurfacesZoneDeletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)
	store.DeleteZone("articles")

	mutations := []models.PendingMutation{
		{ArticleID: "a1", Kind: models.KindRead, Flag: true, Reserved: true},
	}
	articles := []models.Article{
		{ID: "a1", FeedURL: "https://example.com/feed", UniqueID: "u1", Read: true},
	}

	ledger.EXPECT().PendingCount(gomock.Any()).Return(1, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), []string{"a1"}).Return(articles, nil)
	ledger.EXPECT().Requeue(gomock.Any(), []string{"a1"}).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	err := pusher.Push(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, remote.ErrZoneDeletedByUser)
}

func TestPushAlreadySyncedArticleDrainsLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockPendingMutationLedger(ctrl)
	local := mocks.NewMockLocalStore(ctrl)
	zone, store := newArticlesZone(t)
	ctx := context.Background()

	// Both records already live remotely, pushed by another client or by an
	// earlier round of this one.
	article := models.Article{ID: "a1", FeedURL: "https://example.com/feed", UniqueID: "u1", Title: "One"}
	require.NoError(t, zone.Save(ctx, []models.RemoteRecord{
		article.ArticleRecord(),
		models.StatusRecord("a1", false, false),
	}))

	// Starring the article queues a full-record push whose conditional save
	// loses to the newer server versions. The rows must still be released;
	// otherwise every later push replays the same conflict forever.
	mutations := []models.PendingMutation{
		{ArticleID: "a1", Kind: models.KindStarred, Flag: true, Reserved: true},
	}
	ledger.EXPECT().PendingCount(gomock.Any()).Return(1, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(mutations, nil)
	ledger.EXPECT().SelectForProcessing(gomock.Any(), gomock.Any()).Return(nil, nil)
	local.EXPECT().ArticlesByID(gomock.Any(), []string{"a1"}).Return([]models.Article{article}, nil)
	ledger.EXPECT().ReleaseProcessed(gomock.Any(), []string{"a1"}).Return(nil)

	pusher := NewStatusPushService(ledger, local, zone, nil)
	require.NoError(t, pusher.Push(ctx, nil))

	// The newer server records stand untouched.
	status, ok := store.Record("articles", models.StatusRecordID("a1"))
	require.True(t, ok)
	starred, _ := status.BoolFlagField(models.FieldStarred)
	assert.False(t, starred)
}
