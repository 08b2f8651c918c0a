// Package details serves the single-book detail view with category-based
// recommendations.
package details

import (
	"context"
	"fmt"
	"log"

	"bookpulse/internal/bookmeta"
	"bookpulse/internal/platform/googlebooks"
)

// VolumeSource is the slice of the Google Books client the detail view needs.
type VolumeSource interface {
	GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error)
	SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error)
}

const (
	recommendationFetch = 10
	recommendationLimit = 5
)

// Detail is the expanded payload for one volume.
type Detail struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Authors         []string        `json:"authors"`
	HighResCover    string          `json:"highResCover"`
	Description     string          `json:"description,omitempty"`
	Categories      []string        `json:"categories"`
	ReadingTime     string          `json:"readingTime"`
	PageCount       int             `json:"pageCount,omitempty"`
	PublishedDate   string          `json:"publishedDate,omitempty"`
	Publisher       string          `json:"publisher,omitempty"`
	AboutAuthor     string          `json:"aboutAuthor,omitempty"`
	Recommendations []bookmeta.Book `json:"recommendations"`
}

type Service struct {
	volumes VolumeSource
}

func NewService(volumes VolumeSource) *Service {
	return &Service{volumes: volumes}
}

// Get looks up a volume by ID and fans out one subject search on its first
// category for recommendations. The recommendation fetch is secondary: a
// failure degrades to an empty list.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	volume, err := s.volumes.GetVolume(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	info := volume.VolumeInfo
	d := Detail{
		ID:              id,
		Title:           info.Title,
		Authors:         info.Authors,
		HighResCover:    bookmeta.HighResCover(info.ImageLinks),
		Description:     bookmeta.CleanText(info.Description),
		Categories:      bookmeta.NormalizeCategories(info.Categories),
		ReadingTime:     bookmeta.EstimateReadingTime(info.PageCount),
		PageCount:       info.PageCount,
		PublishedDate:   info.PublishedDate,
		Publisher:       info.Publisher,
		Recommendations: []bookmeta.Book{},
	}
	if d.Authors == nil {
		d.Authors = []string{}
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
	if len(info.Authors) > 0 {
		d.AboutAuthor = fmt.Sprintf("Information about %s is not available from Google Books API.", info.Authors[0])
	}

	if len(info.Categories) > 0 {
		d.Recommendations = s.recommend(ctx, id, info.Categories[0])
	}
	return d, nil
}

func (s *Service) recommend(ctx context.Context, selfID, category string) []bookmeta.Book {
	volumes, err := s.volumes.SubjectPage(ctx, category, 0, recommendationFetch)
	if err != nil {
		log.Printf("details: recommendations for %q: %v", category, err)
		return []bookmeta.Book{}
	}

	recs := make([]bookmeta.Book, 0, recommendationLimit)
	for _, v := range volumes {
		if v.ID == selfID {
			continue
		}
		recs = append(recs, bookmeta.FromVolume(v))
		if len(recs) == recommendationLimit {
			break
		}
	}
	return recs
}
