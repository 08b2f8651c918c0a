// Package category serves subject-based book search.
package category

import (
	"context"
	"fmt"

	"bookpulse/internal/bookmeta"
	"bookpulse/internal/platform/googlebooks"
	"bookpulse/internal/upstream"
)

const pageSize = 20

// VolumeSource is the slice of the Google Books client this package needs.
type VolumeSource interface {
	SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error)
}

type Service struct {
	volumes VolumeSource
}

func NewService(volumes VolumeSource) *Service {
	return &Service{volumes: volumes}
}

// Search returns up to twenty books under a subject keyword. Zero matches
// is a NoResults outcome, distinct from an upstream failure.
func (s *Service) Search(ctx context.Context, name string) ([]bookmeta.Book, error) {
	volumes, err := s.volumes.SubjectPage(ctx, name, 0, pageSize)
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, fmt.Errorf("category %q: %w", name, upstream.ErrNoResults)
	}

	books := make([]bookmeta.Book, 0, len(volumes))
	for _, v := range volumes {
		books = append(books, bookmeta.FromVolume(v))
	}
	return books, nil
}
