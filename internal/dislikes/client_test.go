package dislikes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigmv/ytingest/internal/ingest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestVotes(t *testing.T) {
	var gotVideoID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/votes", r.URL.Path)
		gotVideoID = r.URL.Query().Get("videoId")
		io.WriteString(w, `{"likes": 1500, "dislikes": 42, "rating": 4.78}`)
	})

	v, err := c.Votes(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Equal(t, "vid1", gotVideoID)
	assert.Equal(t, int64(1500), v.Likes)
	assert.Equal(t, int64(42), v.Dislikes)
	assert.InDelta(t, 4.78, v.Rating, 0.001)
}

func TestVotesUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Votes(context.Background(), "vid1")
	var upstream *ingest.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}

func TestVotesMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<!doctype html>`)
	})

	_, err := c.Votes(context.Background(), "vid1")
	var upstream *ingest.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, upstream.Detail, "malformed payload")
}
