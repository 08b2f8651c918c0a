// Package bookmeta defines the enriched book shape the API serves and the
// mapping from upstream payloads into it.
package bookmeta

// Book is the per-book output unit shared by every list endpoint. Rank and
// WeeksOnList are always emitted; they are zero for books that did not come
// from a bestseller list.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	CoverImage    string   `json:"coverImage"`
	AuthorName    string   `json:"authorName"`
	ReadingTime   string   `json:"readingTime"`
	Rank          int      `json:"rank"`
	WeeksOnList   int      `json:"weeksOnList"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"pageCount,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
}
