// ABOUTME: This file defines the local article shape and its remote record conversions
// ABOUTME: Articles mirror remote article/status records keyed by a stable article ID

package models

import (
	"time"
)

// Article is the local shape of one article, as surfaced by the consumed
// local storage interface.
type Article struct {
	ID            string
	FeedID        string
	FeedURL       string
	UniqueID      string
	Title         string
	ContentHTML   string
	ContentText   string
	Summary       string
	URL           string
	ExternalURL   string
	ImageURL      string
	DatePublished time.Time
	DateModified  time.Time
	Read          bool
	Starred       bool
}

// Remote record id prefixes. Status and content records for the same article
// share the article ID behind a two-character type prefix.
const (
	articleRecordPrefix = "a_"
	statusRecordPrefix  = "s_"
)

// ArticleRecordID returns the remote record id for an article content record.
func ArticleRecordID(articleID string) string {
	return articleRecordPrefix + articleID
}

// StatusRecordID returns the remote record id for an article status record.
func StatusRecordID(articleID string) string {
	return statusRecordPrefix + articleID
}

// StripRecordPrefix recovers the article ID from a prefixed remote record id.
func StripRecordPrefix(recordID string) string {
	if len(recordID) <= 2 {
		return recordID
	}
	return recordID[2:]
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// StatusRecord builds the remote status record for an article ID.
func StatusRecord(articleID string, read, starred bool) RemoteRecord {
	return RemoteRecord{
		ID:   StatusRecordID(articleID),
		Type: RecordTypeArticleStatus,
		Fields: map[string]any{
			FieldArticleID: articleID,
			FieldRead:      flag(read),
			FieldStarred:   flag(starred),
		},
	}
}

// ArticleRecord builds the remote content record for an article.
func (a Article) ArticleRecord() RemoteRecord {
	return RemoteRecord{
		ID:   ArticleRecordID(a.ID),
		Type: RecordTypeArticle,
		Fields: map[string]any{
			FieldArticleID:     a.ID,
			FieldFeedURL:       a.FeedURL,
			FieldUniqueID:      a.UniqueID,
			FieldTitle:         a.Title,
			FieldContentHTML:   a.ContentHTML,
			FieldContentText:   a.ContentText,
			FieldSummary:       a.Summary,
			FieldURL:           a.URL,
			FieldExternalURL:   a.ExternalURL,
			FieldImageURL:      a.ImageURL,
			FieldDatePublished: a.DatePublished,
			FieldDateModified:  a.DateModified,
		},
	}
}

// ArticleFromRecord converts a remote article content record back into the
// local article shape. Returns false when the record is not an article
// record or is missing its identifying fields.
func ArticleFromRecord(r RemoteRecord) (Article, bool) {
	if r.Type != RecordTypeArticle {
		return Article{}, false
	}
	uniqueID := r.StringField(FieldUniqueID)
	feedURL := r.StringField(FieldFeedURL)
	if uniqueID == "" || feedURL == "" {
		return Article{}, false
	}
	return Article{
		ID:            StripRecordPrefix(r.ID),
		FeedURL:       feedURL,
		UniqueID:      uniqueID,
		Title:         r.StringField(FieldTitle),
		ContentHTML:   r.StringField(FieldContentHTML),
		ContentText:   r.StringField(FieldContentText),
		Summary:       r.StringField(FieldSummary),
		URL:           r.StringField(FieldURL),
		ExternalURL:   r.StringField(FieldExternalURL),
		ImageURL:      r.StringField(FieldImageURL),
		DatePublished: r.TimeField(FieldDatePublished),
		DateModified:  r.TimeField(FieldDateModified),
	}, true
}
