// ABOUTME: This file defines local folder and feed mirror entities
// ABOUTME: Both carry an externalID foreign key into the remote record id space

package models

import (
	"github.com/google/uuid"
)

// Folder mirrors a remote container record. ExternalID is assigned exactly
// once, at creation, and never reused after deletion.
type Folder struct {
	ID         uuid.UUID
	Name       string
	ExternalID string
}

// Feed mirrors a remote feed record.
type Feed struct {
	ID          uuid.UUID
	URL         string
	Name        string
	EditedName  string
	HomePageURL string
	ExternalID  string
}

// NewFolder creates a folder for a remote container.
func NewFolder(name, externalID string) *Folder {
	return &Folder{
		ID:         uuid.New(),
		Name:       name,
		ExternalID: externalID,
	}
}

// NewFeed creates a feed mirror for a remote feed record.
func NewFeed(url, name, editedName, homePageURL, externalID string) *Feed {
	return &Feed{
		ID:          uuid.New(),
		URL:         url,
		Name:        name,
		EditedName:  editedName,
		HomePageURL: homePageURL,
		ExternalID:  externalID,
	}
}

// UnclaimedFeed buffers a feed record whose parent container has not been
// mirrored locally yet. Process-lifetime only, never persisted.
type UnclaimedFeed struct {
	ContainerExternalID string
	URL                 string
	Name                string
	EditedName          string
	HomePageURL         string
	FeedExternalID      string
}
