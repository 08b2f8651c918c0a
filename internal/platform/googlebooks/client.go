// Package googlebooks is a typed client for the Google Books volumes API.
// It works without an API key at lower rate limits; a key, when present,
// is appended to every request.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"bookpulse/internal/upstream"
)

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
		baseURL: "https://www.googleapis.com/books/v1",
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ImageLinks matches volumeInfo.imageLinks.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
	Large          string `json:"large"`
	ExtraLarge     string `json:"extraLarge"`
}

// VolumeInfo matches the volumeInfo object of a volume resource. All fields
// are optional at the source; absent ones decode to zero values.
type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	Description   string     `json:"description"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	PageCount     int        `json:"pageCount"`
	Categories    []string   `json:"categories"`
	PublishedDate string     `json:"publishedDate"`
	Publisher     string     `json:"publisher"`
}

// Volume is one volume resource.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// FindVolume runs a free-text search for a title+author pair and returns the
// first match, or nil when the search matched nothing. A nil result is not
// an error; the upstream search is best-effort by design.
func (c *Client) FindVolume(ctx context.Context, title, author string) (*Volume, error) {
	q := url.Values{}
	q.Set("q", title+" "+author)
	q.Set("maxResults", "1")

	var payload volumesResponse
	if err := c.get(ctx, "/volumes", q, &payload); err != nil {
		return nil, err
	}
	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, nil
	}
	return &payload.Items[0], nil
}

// GetVolume fetches a volume resource by its identifier.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	var v Volume
	if err := c.get(ctx, "/volumes/"+url.PathEscape(id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// SubjectPage fetches one page of volumes under a subject keyword. An empty
// page is a valid outcome.
func (c *Client) SubjectPage(ctx context.Context, subject string, startIndex, maxResults int) ([]Volume, error) {
	q := url.Values{}
	q.Set("q", "subject:"+subject)
	q.Set("startIndex", fmt.Sprint(startIndex))
	q.Set("maxResults", fmt.Sprint(maxResults))

	var payload volumesResponse
	if err := c.get(ctx, "/volumes", q, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	u := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("googlebooks: %s: %w: %v", path, upstream.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("googlebooks: %s: %w: status %d", path, upstream.ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("googlebooks: %s: %w: %v", path, upstream.ErrMalformed, err)
	}
	return nil
}
