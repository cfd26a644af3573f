// Package transcript fetches subtitle segments for a video from a transcript
// provider. A video without a transcript is a normal outcome, not an error.
package transcript

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

// Config captures the client knobs. BaseURL points at the transcript
// provider; the GET endpoint takes the video id as a query parameter and
// answers with a JSON array of {text, start, duration} triples.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches transcripts by video id.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New builds a Client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
	}
}

type segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript returns the video's subtitle segments in playback order. A 404
// from the provider means no transcript exists and yields an empty slice.
func (c *Client) Transcript(ctx context.Context, videoID string) ([]ingest.Subtitle, error) {
	params := url.Values{}
	params.Set("video_id", videoID)
	target := fmt.Sprintf("%s/transcript?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build transcript request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcript request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ingest.UpstreamError{Status: resp.StatusCode, Endpoint: "transcript"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transcript response: %w", err)
	}
	var segments []segment
	if err := json.Unmarshal(body, &segments); err != nil {
		return nil, &ingest.UpstreamError{
			Status:   http.StatusOK,
			Endpoint: "transcript",
			Detail:   fmt.Sprintf("malformed payload: %v", err),
		}
	}

	subtitles := make([]ingest.Subtitle, 0, len(segments))
	for _, seg := range segments {
		subtitles = append(subtitles, ingest.Subtitle{
			VideoID:  videoID,
			Text:     seg.Text,
			Start:    seg.Start,
			Duration: seg.Duration,
		})
	}
	return subtitles, nil
}
