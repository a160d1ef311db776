// ABOUTME: This file tests change-token persistence across store reopens
// ABOUTME: Tokens round-trip per zone and clearing forces a from-scratch fetch

package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	tokens := openTestDatabase(t).TokenStore()
	ctx := context.Background()

	token, err := tokens.Token(ctx, "articles")
	require.NoError(t, err)
	assert.Empty(t, token, "unknown zone yields an empty token")

	require.NoError(t, tokens.SetToken(ctx, "articles", "cursor-1"))
	require.NoError(t, tokens.SetToken(ctx, "account", "cursor-a"))

	token, err = tokens.Token(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, "cursor-1", token)

	// Overwrite replaces the previous cursor.
	require.NoError(t, tokens.SetToken(ctx, "articles", "cursor-2"))
	token, err = tokens.Token(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, "cursor-2", token)

	require.NoError(t, tokens.ClearToken(ctx, "articles"))
	token, err = tokens.Token(ctx, "articles")
	require.NoError(t, err)
	assert.Empty(t, token)

	// Zones are independent.
	token, err = tokens.Token(ctx, "account")
	require.NoError(t, err)
	assert.Equal(t, "cursor-a", token)
}

func TestTokenStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.db")
	ctx := context.Background()

	db, err := OpenSyncDatabase(path, nil)
	require.NoError(t, err)
	require.NoError(t, db.TokenStore().SetToken(ctx, "articles", "cursor-7"))
	require.NoError(t, db.Close())

	db, err = OpenSyncDatabase(path, nil)
	require.NoError(t, err)
	defer db.Close()

	token, err := db.TokenStore().Token(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, "cursor-7", token)
}
