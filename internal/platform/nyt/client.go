// Package nyt is a typed client for the New York Times Books API
// bestseller list endpoints.
package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"bookpulse/internal/upstream"
)

// DateCurrent is the sentinel accepted in place of an ISO date to request
// the latest published snapshot.
const DateCurrent = "current"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewClient(apiKey string, rps float64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: "https://api.nytimes.com/svc/books/v3",
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Book is one row of a bestseller list snapshot.
type Book struct {
	Title       string
	Author      string
	Rank        int
	WeeksOnList int
}

// listResponse matches /lists/{date}/{list}.json.
type listResponse struct {
	Results struct {
		Books []struct {
			Title       string `json:"title"`
			Author      string `json:"author"`
			Rank        int    `json:"rank"`
			WeeksOnList int    `json:"weeks_on_list"`
		} `json:"books"`
	} `json:"results"`
}

// ListSnapshot fetches one dated snapshot of a bestseller list. The date is
// either an ISO YYYY-MM-DD string or DateCurrent. Entries come back ordered
// by ascending rank.
func (c *Client) ListSnapshot(ctx context.Context, listName, date string) ([]Book, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("nyt: %w: NYT_API_KEY is not set", upstream.ErrNotConfigured)
	}

	u := fmt.Sprintf("%s/lists/%s/%s.json?api-key=%s",
		c.baseURL, url.PathEscape(date), url.PathEscape(listName), url.QueryEscape(c.apiKey))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nyt: list %s/%s: %w: %v", listName, date, upstream.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nyt: list %s/%s: %w: status %d", listName, date, upstream.ErrUnavailable, resp.StatusCode)
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nyt: list %s/%s: %w: %v", listName, date, upstream.ErrMalformed, err)
	}

	books := make([]Book, 0, len(payload.Results.Books))
	for _, b := range payload.Results.Books {
		books = append(books, Book{
			Title:       b.Title,
			Author:      b.Author,
			Rank:        b.Rank,
			WeeksOnList: b.WeeksOnList,
		})
	}
	// The API returns rank order already; sorting keeps the contract even
	// if an upstream quirk reorders rows.
	sort.SliceStable(books, func(i, j int) bool { return books[i].Rank < books[j].Rank })
	return books, nil
}
