package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grigmv/ytingest/internal/config"
	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

type fakeIngestor struct {
	channelURL string
	videoCount int
	videoID    string
	pageToken  string
	outcome    ingest.Outcome
}

func (f *fakeIngestor) IngestChannel(_ context.Context, channelURL string, videoCount int) ingest.Outcome {
	f.channelURL = channelURL
	f.videoCount = videoCount
	return f.outcome
}

func (f *fakeIngestor) IngestVideo(_ context.Context, videoID, resumePageToken string) ingest.Outcome {
	f.videoID = videoID
	f.pageToken = resumePageToken
	return f.outcome
}

func newTestServer(ingestor Ingestor, cfg config.Config) *httptest.Server {
	return httptest.NewServer(NewServer(ingestor, cfg, zap.NewNop()).Handler())
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestIngestChannelEndpoint(t *testing.T) {
	fake := &fakeIngestor{outcome: ingest.Outcome{
		State:    ingest.StateCompleted,
		Counters: ingest.Counters{ChannelsWritten: 1, VideosWritten: 3},
	}}
	srv := newTestServer(fake, config.Config{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/ingest/channel", map[string]any{
		"channel_url": "https://www.youtube.com/@somechannel",
		"video_count": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "completed", body["state"])
	assert.Equal(t, "https://www.youtube.com/@somechannel", fake.channelURL)
	assert.Equal(t, 3, fake.videoCount)
}

func TestIngestChannelValidation(t *testing.T) {
	srv := newTestServer(&fakeIngestor{}, config.Config{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/ingest/channel", map[string]any{"video_count": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/v1/ingest/channel", map[string]any{
		"channel_url": "https://www.youtube.com/@x",
		"video_count": -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestIngestVideoEndpoint(t *testing.T) {
	fake := &fakeIngestor{outcome: ingest.Outcome{
		State: ingest.StateQuotaExhausted,
		Resume: &ingest.ResumeToken{
			VideoID:   "abc",
			PageToken: "p7",
		},
		Reason: "daily request quota exhausted",
	}}
	srv := newTestServer(fake, config.Config{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/ingest/video", map[string]any{"video_id": "abc"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "quota_exhausted", body["state"])
	assert.Equal(t, "abc:p7", body["resume_token"])
	assert.Equal(t, "abc", fake.videoID)
	assert.Equal(t, "", fake.pageToken)
}

func TestIngestVideoResume(t *testing.T) {
	fake := &fakeIngestor{outcome: ingest.Outcome{State: ingest.StateCompleted}}
	srv := newTestServer(fake, config.Config{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/ingest/video", map[string]any{"resume_token": "abc:p7"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, "abc", fake.videoID)
	assert.Equal(t, "p7", fake.pageToken)
}

func TestIngestVideoResumeMismatch(t *testing.T) {
	srv := newTestServer(&fakeIngestor{}, config.Config{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/v1/ingest/video", map[string]any{
		"video_id":     "other",
		"resume_token": "abc:p7",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(&fakeIngestor{}, config.Config{})
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{Enabled: true, APIKey: "sekrit"}}
	srv := newTestServer(&fakeIngestor{outcome: ingest.Outcome{State: ingest.StateCompleted}}, cfg)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", "sekrit")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(&fakeIngestor{}, config.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
