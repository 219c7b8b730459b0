package model

import (
	"time"

	"github.com/google/go-github/v75/github"
)

// ReleasePair couples a notification with the release details fetched for its
// subject. Pairs are produced by the notification source; a pair whose detail
// fetch failed never reaches the pipeline.
type ReleasePair struct {
	Notification *github.Notification
	Release      *github.RepositoryRelease
}

// ReleaseRecord is the normalized shape of one release notification. It is a
// value type and never modified after extraction.
type ReleaseRecord struct {
	RepositoryName string
	TagName        string
	ReleaseBody    string
	ReleaseURL     string
	PublishedAt    string
}

// NewReleaseRecord extracts a ReleaseRecord from a pair. Extraction is total:
// missing or nil fields become defaults, never errors.
func NewReleaseRecord(pair ReleasePair) ReleaseRecord {
	record := ReleaseRecord{
		RepositoryName: pair.Notification.GetRepository().GetFullName(),
		TagName:        pair.Release.GetTagName(),
		ReleaseBody:    pair.Release.GetBody(),
		ReleaseURL:     pair.Release.GetHTMLURL(),
	}

	if record.RepositoryName == "" {
		record.RepositoryName = "Unknown"
	}
	if record.TagName == "" {
		record.TagName = "Unknown"
	}
	if publishedAt := pair.Release.GetPublishedAt(); !publishedAt.Time.IsZero() {
		record.PublishedAt = publishedAt.Time.UTC().Format(time.RFC3339)
	}

	return record
}
