package topbooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookpulse/internal/platform/googlebooks"
	"bookpulse/internal/platform/nyt"
	"bookpulse/internal/upstream"
)

type fakeLists struct {
	fn func(ctx context.Context, listName, date string) ([]nyt.Book, error)
}

func (f fakeLists) ListSnapshot(ctx context.Context, listName, date string) ([]nyt.Book, error) {
	return f.fn(ctx, listName, date)
}

type fakeVolumes struct {
	find    func(ctx context.Context, title, author string) (*googlebooks.Volume, error)
	subject func(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error)

	findCalls int
}

func (f *fakeVolumes) FindVolume(ctx context.Context, title, author string) (*googlebooks.Volume, error) {
	f.findCalls++
	if f.find == nil {
		return nil, nil
	}
	return f.find(ctx, title, author)
}

func (f *fakeVolumes) SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error) {
	if f.subject == nil {
		return nil, nil
	}
	return f.subject(ctx, subject, startIndex, maxResults)
}

func newTestService(lists fakeLists, volumes *fakeVolumes) *Service {
	s := NewService(lists, volumes)
	s.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func entry(title, author string, rank int) nyt.Book {
	return nyt.Book{Title: title, Author: author, Rank: rank, WeeksOnList: rank}
}

func TestWeeklyPreservesSnapshotOrder(t *testing.T) {
	lists := fakeLists{fn: func(ctx context.Context, listName, date string) ([]nyt.Book, error) {
		assert.Equal(t, "hardcover-fiction", listName)
		assert.Equal(t, nyt.DateCurrent, date)
		return []nyt.Book{
			entry("First", "A", 1),
			entry("Second", "B", 2),
			entry("Third", "C", 3),
		}, nil
	}}
	volumes := &fakeVolumes{}

	list, err := newTestService(lists, volumes).Weekly(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Books, 3)
	assert.Equal(t, 3, list.TotalBooks)
	assert.Equal(t, "NYT Hardcover Fiction Bestsellers", list.Source)
	assert.Equal(t, "2026-08-28T12:00:00Z", list.LastUpdated)
	for i, want := range []string{"First", "Second", "Third"} {
		assert.Equal(t, want, list.Books[i].Title)
		assert.Equal(t, i+1, list.Books[i].Rank)
	}
	assert.Equal(t, 3, volumes.findCalls)
}

func TestWeeklyEnrichmentMissDoesNotDropBooks(t *testing.T) {
	titles := []string{"One", "Two", "Three", "Four", "Five"}
	lists := fakeLists{fn: func(ctx context.Context, _, _ string) ([]nyt.Book, error) {
		books := make([]nyt.Book, len(titles))
		for i, title := range titles {
			books[i] = entry(title, "Author", i+1)
		}
		return books, nil
	}}
	volumes := &fakeVolumes{find: func(ctx context.Context, title, author string) (*googlebooks.Volume, error) {
		if title == "Three" {
			return nil, errors.New("boom")
		}
		return &googlebooks.Volume{ID: "id-" + title}, nil
	}}

	list, err := newTestService(lists, volumes).Weekly(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Books, 5)
	enriched := 0
	for _, b := range list.Books {
		if b.ID != "" {
			enriched++
		}
	}
	assert.Equal(t, 4, enriched)
	assert.Equal(t, "Three", list.Books[2].Title)
	assert.Equal(t, "", list.Books[2].ID)
	assert.Equal(t, "Unknown", list.Books[2].ReadingTime)
}

func TestWeeklyPrimaryFailureSkipsEnrichment(t *testing.T) {
	lists := fakeLists{fn: func(ctx context.Context, _, _ string) ([]nyt.Book, error) {
		return nil, upstream.ErrUnavailable
	}}
	volumes := &fakeVolumes{}

	_, err := newTestService(lists, volumes).Weekly(context.Background())
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.Equal(t, 0, volumes.findCalls)
}

func TestMonthlyWindowDates(t *testing.T) {
	var dates []string
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		dates = append(dates, date)
		return nil, nil
	}}

	_, err := newTestService(lists, &fakeVolumes{}).Monthly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-28", "2026-08-21", "2026-08-14", "2026-08-07"}, dates)
}

func TestMonthlyAggregatesAppearances(t *testing.T) {
	// A appears in weeks 1, 2, and 4; B only in week 3.
	snapshots := map[string][]nyt.Book{
		"2026-08-28": {entry("A", "X", 1)},
		"2026-08-21": {entry("A", "X", 2)},
		"2026-08-14": {entry("B", "Y", 1)},
		"2026-08-07": {entry("A", "X", 3)},
	}
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		return snapshots[date], nil
	}}

	list, err := newTestService(lists, &fakeVolumes{}).Monthly(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Books, 2)
	assert.Equal(t, "A", list.Books[0].Title)
	assert.Equal(t, "B", list.Books[1].Title)
	// The representative is the first-seen entry, so A keeps rank 1.
	assert.Equal(t, 1, list.Books[0].Rank)
	assert.Equal(t, "NYT Hardcover Fiction (Monthly Aggregate)", list.Source)
}

func TestMonthlyKeyIsCaseInsensitive(t *testing.T) {
	snapshots := map[string][]nyt.Book{
		"2026-08-28": {entry("The Book", "Jane Doe", 1)},
		"2026-08-21": {entry("THE BOOK", "JANE DOE", 4)},
	}
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		return snapshots[date], nil
	}}

	list, err := newTestService(lists, &fakeVolumes{}).Monthly(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Books, 1)
	// First-seen wins: title and rank come from the week-1 row.
	assert.Equal(t, "The Book", list.Books[0].Title)
	assert.Equal(t, 1, list.Books[0].Rank)
}

func TestMonthlyTieBreakIsFirstEncountered(t *testing.T) {
	snapshots := map[string][]nyt.Book{
		"2026-08-28": {entry("A", "X", 1), entry("B", "Y", 2)},
		"2026-08-21": {entry("B", "Y", 1), entry("A", "X", 2)},
	}
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		return snapshots[date], nil
	}}

	list, err := newTestService(lists, &fakeVolumes{}).Monthly(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Books, 2)
	assert.Equal(t, "A", list.Books[0].Title)
	assert.Equal(t, "B", list.Books[1].Title)
}

func TestMonthlyTruncatesToTopTen(t *testing.T) {
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		if date != "2026-08-28" {
			return nil, nil
		}
		books := make([]nyt.Book, 15)
		for i := range books {
			books[i] = entry(string(rune('A'+i)), "X", i+1)
		}
		return books, nil
	}}

	list, err := newTestService(lists, &fakeVolumes{}).Monthly(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Books, 10)
}

func TestMonthlyPrimaryFailureAbortsRun(t *testing.T) {
	calls := 0
	lists := fakeLists{fn: func(ctx context.Context, _, date string) ([]nyt.Book, error) {
		calls++
		if calls == 2 {
			return nil, upstream.ErrUnavailable
		}
		return []nyt.Book{entry("A", "X", 1)}, nil
	}}
	volumes := &fakeVolumes{}

	_, err := newTestService(lists, volumes).Monthly(context.Background())
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, volumes.findCalls)
}

func TestRandom(t *testing.T) {
	var gotSubject string
	var gotStart, gotMax int
	volumes := &fakeVolumes{subject: func(ctx context.Context, subject string, startIndex, maxResults int) ([]googlebooks.Volume, error) {
		gotSubject, gotStart, gotMax = subject, startIndex, maxResults
		return []googlebooks.Volume{
			{ID: "r1", VolumeInfo: googlebooks.VolumeInfo{Title: "Pick"}},
		}, nil
	}}

	s := newTestService(fakeLists{}, volumes)
	s.intn = func(n int) int { return 3 }

	list, err := s.Random(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "science", gotSubject)
	assert.Equal(t, 3, gotStart)
	assert.Equal(t, 20, gotMax)
	assert.Equal(t, "science", list.SubjectQueried)
	assert.Equal(t, "Google Books API", list.Source)
	require.Len(t, list.Books, 1)
	assert.Equal(t, 0, list.Books[0].Rank)
	assert.Equal(t, 0, list.Books[0].WeeksOnList)
	// Items come straight from the search; no per-item enrichment runs.
	assert.Equal(t, 0, volumes.findCalls)
}

func TestRandomPrimaryFailure(t *testing.T) {
	volumes := &fakeVolumes{subject: func(ctx context.Context, _ string, _, _ int) ([]googlebooks.Volume, error) {
		return nil, upstream.ErrUnavailable
	}}
	s := newTestService(fakeLists{}, volumes)
	s.intn = func(n int) int { return 0 }

	_, err := s.Random(context.Background())
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
}
