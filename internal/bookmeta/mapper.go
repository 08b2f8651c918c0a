package bookmeta

import (
	"strings"

	"bookpulse/internal/platform/googlebooks"
	"bookpulse/internal/platform/nyt"
)

// FromBestseller builds a Book for a bestseller-list entry, layering volume
// metadata on top when the enrichment lookup produced a match. A nil volume
// degrades to the bestseller fields alone; the entry is never dropped.
func FromBestseller(entry nyt.Book, v *googlebooks.Volume) Book {
	b := Book{
		Title:       entry.Title,
		AuthorName:  entry.Author,
		ReadingTime: ReadingTimeUnknown,
		Rank:        entry.Rank,
		WeeksOnList: entry.WeeksOnList,
	}
	if v == nil {
		return b
	}

	info := v.VolumeInfo
	b.ID = v.ID
	if info.Title != "" {
		b.Title = info.Title
	}
	if len(info.Authors) > 0 {
		b.AuthorName = strings.Join(info.Authors, ", ")
	}
	b.CoverImage = CoverImage(info.ImageLinks)
	b.ReadingTime = EstimateReadingTime(info.PageCount)
	b.Description = CleanDescription(info.Description)
	b.PageCount = info.PageCount
	b.Categories = NormalizeCategories(info.Categories)
	b.PublishedDate = info.PublishedDate
	return b
}

// FromVolume builds a Book for an item that originated directly from a
// volume search. Rank and WeeksOnList are zero by contract.
func FromVolume(v googlebooks.Volume) Book {
	info := v.VolumeInfo
	author := "Unknown"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}
	return Book{
		ID:            v.ID,
		Title:         info.Title,
		CoverImage:    CoverImage(info.ImageLinks),
		AuthorName:    author,
		ReadingTime:   EstimateReadingTime(info.PageCount),
		Description:   CleanDescription(info.Description),
		PageCount:     info.PageCount,
		Categories:    NormalizeCategories(info.Categories),
		PublishedDate: info.PublishedDate,
	}
}

// CoverImage picks the list-card cover, preferring the regular thumbnail,
// upgraded to https.
func CoverImage(links googlebooks.ImageLinks) string {
	u := links.Thumbnail
	if u == "" {
		u = links.SmallThumbnail
	}
	return SecureURL(u)
}

// HighResCover picks the largest available image for the detail view.
func HighResCover(links googlebooks.ImageLinks) string {
	for _, u := range []string{links.ExtraLarge, links.Large, links.Thumbnail, links.SmallThumbnail} {
		if u != "" {
			return SecureURL(u)
		}
	}
	return ""
}
