// ABOUTME: Tests for merging pending mutations into outbound record mutations
// ABOUTME: Covers precedence, effective flag resolution and orphan detection

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdateRecordKind(t *testing.T) {
	tests := map[string]struct {
		mutations []PendingMutation
		article   *Article
		expected  RecordMutationKind
	}{
		"delete_wins_over_everything": {
			mutations: []PendingMutation{
				{Kind: KindNew, Flag: true},
				{Kind: KindStarred, Flag: true},
				{Kind: KindDeleted, Flag: true},
			},
			article:  &Article{Read: true},
			expected: RecordMutationDelete,
		},
		"new_flag_forces_full_record": {
			mutations: []PendingMutation{{Kind: KindNew, Flag: true}},
			article:   &Article{Read: true},
			expected:  RecordMutationNew,
		},
		"unread_article_keeps_full_record": {
			mutations: []PendingMutation{{Kind: KindRead, Flag: false}},
			article:   &Article{Read: true},
			expected:  RecordMutationNew,
		},
		"starred_article_keeps_full_record": {
			mutations: []PendingMutation{{Kind: KindStarred, Flag: true}},
			article:   &Article{Read: true},
			expected:  RecordMutationNew,
		},
		"read_unstarred_settles_to_status_only": {
			mutations: []PendingMutation{{Kind: KindRead, Flag: true}},
			article:   &Article{},
			expected:  RecordMutationStatusOnly,
		},
		"stored_starred_flag_counts_without_mutation": {
			mutations: []PendingMutation{{Kind: KindRead, Flag: true}},
			article:   &Article{Starred: true},
			expected:  RecordMutationNew,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			update := StatusUpdate{ArticleID: "a1", Mutations: tc.mutations, Article: tc.article}
			assert.Equal(t, tc.expected, update.RecordKind())
		})
	}
}

func TestStatusUpdateFlagsPendingWinsOverStored(t *testing.T) {
	update := StatusUpdate{
		Mutations: []PendingMutation{
			{Kind: KindRead, Flag: false},
			{Kind: KindStarred, Flag: true},
		},
		Article: &Article{Read: true, Starred: false},
	}
	assert.False(t, update.ReadFlag())
	assert.True(t, update.StarredFlag())
}

func TestMergeStatusUpdatesSeparatesOrphans(t *testing.T) {
	mutations := []PendingMutation{
		{ArticleID: "a1", Kind: KindRead, Flag: true},
		{ArticleID: "a2", Kind: KindStarred, Flag: true},
		{ArticleID: "a3", Kind: KindDeleted, Flag: true},
	}
	articles := []Article{{ID: "a1"}}

	updates, orphans := MergeStatusUpdates(mutations, articles)

	// a2 has no local article and no delete, so it cannot be pushed.
	assert.Equal(t, []string{"a2"}, orphans)

	require.Len(t, updates, 2)
	byID := make(map[string]StatusUpdate, len(updates))
	for _, u := range updates {
		byID[u.ArticleID] = u
	}
	require.NotNil(t, byID["a1"].Article)
	assert.Equal(t, RecordMutationStatusOnly, byID["a1"].RecordKind())
	assert.Nil(t, byID["a3"].Article)
	assert.Equal(t, RecordMutationDelete, byID["a3"].RecordKind())
}
