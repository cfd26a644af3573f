// Package dislikes queries the third-party vote-count API. The lookup is
// supplementary: a failure leaves the video's external vote fields null and
// never blocks ingestion.
package dislikes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/grigmv/ytingest/internal/ingest"
)

// DefaultBaseURL is the production votes API root.
const DefaultBaseURL = "https://returnyoutubedislikeapi.com"

// Config captures the client knobs.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client looks up vote counts by video id.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New builds a Client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
	}
}

type votesResponse struct {
	Likes    int64   `json:"likes"`
	Dislikes int64   `json:"dislikes"`
	Rating   float64 `json:"rating"`
}

// Votes fetches the like/dislike triple for a video.
func (c *Client) Votes(ctx context.Context, videoID string) (ingest.Votes, error) {
	params := url.Values{}
	params.Set("videoId", videoID)
	target := fmt.Sprintf("%s/votes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ingest.Votes{}, fmt.Errorf("build votes request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ingest.Votes{}, fmt.Errorf("votes request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return ingest.Votes{}, &ingest.UpstreamError{Status: resp.StatusCode, Endpoint: "votes"}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ingest.Votes{}, fmt.Errorf("read votes response: %w", err)
	}
	var parsed votesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ingest.Votes{}, &ingest.UpstreamError{
			Status:   http.StatusOK,
			Endpoint: "votes",
			Detail:   fmt.Sprintf("malformed payload: %v", err),
		}
	}
	return ingest.Votes{Likes: parsed.Likes, Dislikes: parsed.Dislikes, Rating: parsed.Rating}, nil
}
