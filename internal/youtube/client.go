package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/metrics"
)

// DefaultBaseURL is the production metadata API root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Config captures the client knobs.
type Config struct {
	// APIKey is the static credential attached to every request.
	APIKey string
	// BaseURL overrides the API root (tests point it at a local server).
	BaseURL string
	// Timeout bounds a single page request.
	Timeout time.Duration
	// SearchPageSize is the per-page maximum for the search endpoint.
	SearchPageSize int
}

// Client issues read requests against the metadata API. It is constructed
// once per process and passed into everything that talks upstream; there is
// no hidden shared session.
type Client struct {
	httpClient *http.Client
	cfg        Config
	retry      ingest.RetryPolicy
	archive    ingest.BlobStore
	hasher     ingest.Hasher
	logger     *zap.Logger
}

// New builds a Client. archive and hasher may be nil to disable raw payload
// archiving; retry may be nil for the default policy.
func New(cfg Config, retry ingest.RetryPolicy, archive ingest.BlobStore, hasher ingest.Hasher, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.SearchPageSize <= 0 || cfg.SearchPageSize > 50 {
		cfg.SearchPageSize = 50
	}
	if retry == nil {
		retry = ingest.NewExponentialRetryPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		retry:      retry,
		archive:    archive,
		hasher:     hasher,
		logger:     logger,
	}
}

// getJSON performs one logical GET with retry-with-backoff for transient
// failures, then decodes the body into out. 4xx statuses surface immediately.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("key", c.cfg.APIKey)
	target := fmt.Sprintf("%s/%s?%s", c.cfg.BaseURL, endpoint, query.Encode())

	for attempt := 0; ; attempt++ {
		body, err := c.fetchOnce(ctx, endpoint, target)
		if err == nil {
			c.archivePayload(ctx, endpoint, body)
			if jsonErr := json.Unmarshal(body, out); jsonErr != nil {
				return &ingest.UpstreamError{
					Status:   http.StatusOK,
					Endpoint: endpoint,
					Detail:   fmt.Sprintf("malformed payload: %v", jsonErr),
				}
			}
			return nil
		}
		if !c.retry.ShouldRetry(err, attempt) {
			return err
		}
		metrics.ObserveUpstreamRetry(endpoint)
		c.logger.Warn("upstream request failed, retrying",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retry.Backoff(attempt)):
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context, endpoint, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	metrics.ObserveAPIRequest(endpoint, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ingest.UpstreamError{Status: resp.StatusCode, Endpoint: endpoint}
	}
	return body, nil
}

// archivePayload snapshots the raw page to the blob store. Archiving is
// best-effort: a failure is logged and ingestion continues.
func (c *Client) archivePayload(ctx context.Context, endpoint string, body []byte) {
	if c.archive == nil || c.hasher == nil {
		return
	}
	hash, err := c.hasher.Hash(body)
	if err != nil {
		c.logger.Warn("hash payload failed", zap.String("endpoint", endpoint), zap.Error(err))
		return
	}
	path := fmt.Sprintf("%s/%s.json", endpoint, hash)
	if _, err := c.archive.PutObject(ctx, path, "application/json", bytes.NewReader(body)); err != nil {
		c.logger.Warn("archive payload failed", zap.String("endpoint", endpoint), zap.Error(err))
	}
}
