// ABOUTME: This file defines the generic remote record shapes mirrored by the sync engine
// ABOUTME: Records are opaque field bags keyed by id within a zone, with a server version token

package models

import (
	"time"
)

// RecordType identifies what a remote record represents.
type RecordType string

const (
	RecordTypeFeed          RecordType = "feed"
	RecordTypeContainer     RecordType = "container"
	RecordTypeArticle       RecordType = "article"
	RecordTypeArticleStatus RecordType = "articleStatus"
)

// Well-known record field names. The remote store treats fields as opaque;
// these names are the engine's own convention for both directions.
const (
	FieldArticleID            = "articleID"
	FieldRead                 = "read"
	FieldStarred              = "starred"
	FieldURL                  = "url"
	FieldName                 = "name"
	FieldEditedName           = "editedName"
	FieldHomePageURL          = "homePageURL"
	FieldContainerExternalIDs = "containerExternalIDs"
	FieldIsAccount            = "isAccount"
	FieldFeedURL              = "feedURL"
	FieldUniqueID             = "uniqueID"
	FieldTitle                = "title"
	FieldContentHTML          = "contentHTML"
	FieldContentText          = "contentText"
	FieldSummary              = "summary"
	FieldExternalURL          = "externalURL"
	FieldImageURL             = "imageURL"
	FieldDatePublished        = "datePublished"
	FieldDateModified         = "dateModified"
)

// RemoteRecord is one record in a remote zone. Identity is ID within the
// zone. Version is an opaque server token used for save-if-unchanged writes.
type RemoteRecord struct {
	ID      string
	Type    RecordType
	Fields  map[string]any
	Version string
}

// RecordKey identifies a deleted record in a change set.
type RecordKey struct {
	Type RecordType
	ID   string
}

// StringField returns the named field as a string, or "" when absent.
func (r RemoteRecord) StringField(name string) string {
	if v, ok := r.Fields[name].(string); ok {
		return v
	}
	return ""
}

// StringsField returns the named field as a string slice, or nil when absent.
func (r RemoteRecord) StringsField(name string) []string {
	if v, ok := r.Fields[name].([]string); ok {
		return v
	}
	return nil
}

// TimeField returns the named field as a time, or the zero time when absent.
func (r RemoteRecord) TimeField(name string) time.Time {
	if v, ok := r.Fields[name].(time.Time); ok {
		return v
	}
	return time.Time{}
}

// BoolFlagField interprets "0"/"1" string flags used on status records.
func (r RemoteRecord) BoolFlagField(name string) (value, present bool) {
	v, ok := r.Fields[name].(string)
	if !ok {
		return false, false
	}
	return v == "1", true
}

// ChangeSet is one batch of incremental changes from a zone, together with
// the cursor token that follows the batch.
type ChangeSet struct {
	Changed []RemoteRecord
	Deleted []RecordKey
	Token   string
}
