// ABOUTME: This file defines pending status mutations and their merge into outbound record mutations
// ABOUTME: A pending mutation is a locally queued, not-yet-acknowledged status change awaiting upload

package models

// MutationKind is the kind of status change a pending mutation carries.
// Distinct kinds for the same article are independent rows.
type MutationKind string

const (
	KindRead    MutationKind = "read"
	KindStarred MutationKind = "starred"
	KindNew     MutationKind = "new"
	KindDeleted MutationKind = "deleted"
)

// PendingMutation is one durable ledger row. Reserved is set while an
// outbound push batch holding the row is in flight.
type PendingMutation struct {
	ArticleID string
	Kind      MutationKind
	Flag      bool
	Reserved  bool
}

// RecordMutationKind says how a merged status update maps onto remote
// record operations.
type RecordMutationKind int

const (
	// RecordMutationDelete removes the article's status record remotely.
	RecordMutationDelete RecordMutationKind = iota
	// RecordMutationNew uploads full content plus status, save-if-unchanged,
	// so the server never holds a phantom status with no content.
	RecordMutationNew
	// RecordMutationStatusOnly uploads the status record and drops the remote
	// content record, which is no longer needed once the article settles.
	RecordMutationStatusOnly
)

// StatusUpdate merges all pending mutations for one article into a single
// outbound record mutation. Article is nil when local storage no longer
// holds the article.
type StatusUpdate struct {
	ArticleID string
	Mutations []PendingMutation
	Article   *Article
}

// MergeStatusUpdates groups mutations by article and pairs them with the
// fetched local articles. Rows whose article is missing and that do not
// carry a delete are returned separately as orphans.
func MergeStatusUpdates(mutations []PendingMutation, articles []Article) (updates []StatusUpdate, orphanIDs []string) {
	byArticle := make(map[string][]PendingMutation)
	for _, m := range mutations {
		byArticle[m.ArticleID] = append(byArticle[m.ArticleID], m)
	}
	articleByID := make(map[string]*Article, len(articles))
	for i := range articles {
		articleByID[articles[i].ID] = &articles[i]
	}

	for articleID, ms := range byArticle {
		update := StatusUpdate{ArticleID: articleID, Mutations: ms, Article: articleByID[articleID]}
		if update.Article == nil && update.RecordKind() != RecordMutationDelete {
			orphanIDs = append(orphanIDs, articleID)
			continue
		}
		updates = append(updates, update)
	}
	return updates, orphanIDs
}

// RecordKind resolves the outbound mutation with precedence
// delete > new/full-record > status-only.
func (u StatusUpdate) RecordKind() RecordMutationKind {
	hasNew := false
	for _, m := range u.Mutations {
		if m.Kind == KindDeleted && m.Flag {
			return RecordMutationDelete
		}
		if m.Kind == KindNew && m.Flag {
			hasNew = true
		}
	}
	if hasNew || !u.ReadFlag() || u.StarredFlag() {
		return RecordMutationNew
	}
	return RecordMutationStatusOnly
}

// ReadFlag is the read value the update should publish. The pending read
// mutation wins over the stored article value.
func (u StatusUpdate) ReadFlag() bool {
	for _, m := range u.Mutations {
		if m.Kind == KindRead {
			return m.Flag
		}
	}
	if u.Article != nil {
		return u.Article.Read
	}
	return false
}

// StarredFlag is the starred value the update should publish.
func (u StatusUpdate) StarredFlag() bool {
	for _, m := range u.Mutations {
		if m.Kind == KindStarred {
			return m.Flag
		}
	}
	if u.Article != nil {
		return u.Article.Starred
	}
	return false
}
