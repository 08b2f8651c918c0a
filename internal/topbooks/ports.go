package topbooks

import (
	"context"

	"bookpulse/internal/platform/googlebooks"
	"bookpulse/internal/platform/nyt"
)

// BestsellerSource provides dated bestseller list snapshots.
type BestsellerSource interface {
	ListSnapshot(ctx context.Context, listName, date string) ([]nyt.Book, error)
}

// VolumeSource provides enrichment metadata and subject searches.
type VolumeSource interface {
	FindVolume(ctx context.Context, title, author string) (*googlebooks.Volume, error)
	SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error)
}
