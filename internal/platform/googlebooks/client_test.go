package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookpulse/internal/upstream"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(apiKey, 1000)
	c.baseURL = srv.URL
	return c
}

func TestFindVolume(t *testing.T) {
	var gotQuery, gotMax, gotKey string
	c := newTestClient(t, "g-key", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{
			"totalItems": 2,
			"items": [
				{"id": "best", "volumeInfo": {"title": "Best Match", "pageCount": 320}},
				{"id": "second", "volumeInfo": {"title": "Second"}}
			]
		}`))
	})

	v, err := c.FindVolume(context.Background(), "Best Match", "Somebody")
	require.NoError(t, err)

	assert.Equal(t, "Best Match Somebody", gotQuery)
	assert.Equal(t, "1", gotMax)
	assert.Equal(t, "g-key", gotKey)

	require.NotNil(t, v)
	assert.Equal(t, "best", v.ID)
	assert.Equal(t, 320, v.VolumeInfo.PageCount)
}

func TestFindVolumeNoMatchIsNotAnError(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("key"))
		w.Write([]byte(`{"totalItems": 0}`))
	})

	v, err := c.FindVolume(context.Background(), "Nothing", "Nobody")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGetVolume(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/abc123", r.URL.Path)
		w.Write([]byte(`{"id": "abc123", "volumeInfo": {"title": "Direct", "publisher": "House"}}`))
	})

	v, err := c.GetVolume(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, "House", v.VolumeInfo.Publisher)
}

func TestSubjectPage(t *testing.T) {
	var gotQuery, gotStart, gotMax string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotStart = r.URL.Query().Get("startIndex")
		gotMax = r.URL.Query().Get("maxResults")
		w.Write([]byte(`{"totalItems": 2, "items": [{"id": "a"}, {"id": "b"}]}`))
	})

	volumes, err := c.SubjectPage(context.Background(), "fantasy", 40, 20)
	require.NoError(t, err)

	assert.Equal(t, "subject:fantasy", gotQuery)
	assert.Equal(t, "40", gotStart)
	assert.Equal(t, "20", gotMax)
	require.Len(t, volumes, 2)
	assert.Equal(t, "a", volumes[0].ID)
}

func TestSubjectPageEmptyIsValid(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	volumes, err := c.SubjectPage(context.Background(), "obscure", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestUpstreamStatusError(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.FindVolume(context.Background(), "x", "y")
	assert.ErrorIs(t, err, upstream.ErrUnavailable)

	_, err = c.GetVolume(context.Background(), "x")
	assert.ErrorIs(t, err, upstream.ErrUnavailable)
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := c.FindVolume(context.Background(), "x", "y")
	assert.ErrorIs(t, err, upstream.ErrMalformed)
}
