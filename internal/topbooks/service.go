// Package topbooks builds the weekly, monthly, and random top-book lists.
//
// The monthly list aggregates the last four weekly snapshots: entries are
// deduplicated by lower-cased title+author, counted per snapshot, ranked by
// appearance count, and the top ten are enriched with Google Books
// metadata. A failed enrichment lookup degrades that one book to its
// bestseller fields; it never fails the request.
package topbooks

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"bookpulse/internal/bookmeta"
	"bookpulse/internal/platform/nyt"
)

const (
	listName    = "hardcover-fiction"
	windowWeeks = 4
	monthlyTopN = 10

	randomPageSize = 20
	randomMaxStart = 100
)

var randomSubjects = []string{
	"fiction", "mystery", "fantasy", "science", "history",
	"romance", "technology", "philosophy", "self-help", "thriller",
}

// List is the payload served by all three list endpoints.
type List struct {
	Books          []bookmeta.Book `json:"books"`
	TotalBooks     int             `json:"totalBooks"`
	SubjectQueried string          `json:"subjectQueried,omitempty"`
	Source         string          `json:"source"`
	LastUpdated    string          `json:"lastUpdated"`
}

type Service struct {
	lists   BestsellerSource
	volumes VolumeSource

	// Overridable in tests.
	now  func() time.Time
	intn func(n int) int
}

func NewService(lists BestsellerSource, volumes VolumeSource) *Service {
	return &Service{
		lists:   lists,
		volumes: volumes,
		now:     time.Now,
		intn:    rand.Intn,
	}
}

// Weekly fetches the current bestseller snapshot and enriches every entry
// in rank order.
func (s *Service) Weekly(ctx context.Context) (List, error) {
	entries, err := s.lists.ListSnapshot(ctx, listName, nyt.DateCurrent)
	if err != nil {
		return List{}, err
	}

	books := s.enrichAll(ctx, entries)
	return List{
		Books:       books,
		TotalBooks:  len(books),
		Source:      "NYT Hardcover Fiction Bestsellers",
		LastUpdated: s.timestamp(),
	}, nil
}

// aggregateRecord accumulates one deduplicated book across the window. The
// entry is the first-seen representative and is never replaced.
type aggregateRecord struct {
	entry       nyt.Book
	appearances int
}

// Monthly aggregates the last four weekly snapshots into a top-ten ranked
// by how many snapshots each book appeared in. Snapshots are fetched
// sequentially as a courtesy to the upstream rate limits.
func (s *Service) Monthly(ctx context.Context) (List, error) {
	recordsByKey := make(map[string]*aggregateRecord)
	var order []*aggregateRecord

	for week := 0; week < windowWeeks; week++ {
		date := s.now().AddDate(0, 0, -7*week).Format("2006-01-02")
		entries, err := s.lists.ListSnapshot(ctx, listName, date)
		if err != nil {
			return List{}, err
		}

		// appearances counts snapshots, not rows: a key increments at
		// most once per snapshot.
		seen := make(map[string]bool)
		for _, e := range entries {
			key := aggregateKey(e)
			if seen[key] {
				continue
			}
			seen[key] = true

			if rec, ok := recordsByKey[key]; ok {
				rec.appearances++
				continue
			}
			rec := &aggregateRecord{entry: e, appearances: 1}
			recordsByKey[key] = rec
			order = append(order, rec)
		}
	}

	// Stable sort keeps first-encountered order on equal appearances.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].appearances > order[j].appearances
	})
	if len(order) > monthlyTopN {
		order = order[:monthlyTopN]
	}

	entries := make([]nyt.Book, len(order))
	for i, rec := range order {
		entries[i] = rec.entry
	}

	books := s.enrichAll(ctx, entries)
	return List{
		Books:       books,
		TotalBooks:  len(books),
		Source:      "NYT Hardcover Fiction (Monthly Aggregate)",
		LastUpdated: s.timestamp(),
	}, nil
}

// Random serves one page of volumes under a randomly chosen subject. The
// items originate from the enrichment source, so no secondary lookup runs;
// rank and weeksOnList are zero by contract.
func (s *Service) Random(ctx context.Context) (List, error) {
	subject := randomSubjects[s.intn(len(randomSubjects))]
	startIndex := s.intn(randomMaxStart)

	volumes, err := s.volumes.SubjectPage(ctx, subject, startIndex, randomPageSize)
	if err != nil {
		return List{}, err
	}

	books := make([]bookmeta.Book, 0, len(volumes))
	for _, v := range volumes {
		books = append(books, bookmeta.FromVolume(v))
	}
	return List{
		Books:          books,
		TotalBooks:     len(books),
		SubjectQueried: subject,
		Source:         "Google Books API",
		LastUpdated:    s.timestamp(),
	}, nil
}

// enrichAll attempts one enrichment lookup per entry, in order. A failed or
// empty lookup leaves that entry with bestseller fields only.
func (s *Service) enrichAll(ctx context.Context, entries []nyt.Book) []bookmeta.Book {
	books := make([]bookmeta.Book, 0, len(entries))
	for _, e := range entries {
		volume, err := s.volumes.FindVolume(ctx, e.Title, e.Author)
		if err != nil {
			log.Printf("topbooks: enrichment failed for %q by %q: %v", e.Title, e.Author, err)
			volume = nil
		}
		books = append(books, bookmeta.FromBestseller(e, volume))
	}
	return books
}

func aggregateKey(e nyt.Book) string {
	return strings.ToLower(e.Title) + "-" + strings.ToLower(e.Author)
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
