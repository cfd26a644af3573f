package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/metrics"
	"github.com/grigmv/ytingest/internal/youtube"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := youtube.New(
		youtube.Config{APIKey: "k", BaseURL: srv.URL},
		ingest.NewRetryPolicy(1, time.Millisecond, time.Millisecond),
		nil, nil, nil,
	)
	return NewSource(client)
}

func TestSourceListRecentVideoIDsPartialOnFailure(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "p2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		page := map[string]any{
			"nextPageToken": "p2",
			"pageInfo":      map[string]int{"totalResults": 20},
			"items": []map[string]any{
				{"id": map[string]string{"kind": "youtube#video", "videoId": "vid1"}},
				{"id": map[string]string{"kind": "youtube#video", "videoId": "vid2"}},
			},
		}
		json.NewEncoder(w).Encode(page)
	}
	src := newTestSource(t, handler)

	ids, err := src.ListRecentVideoIDs(context.Background(), "UCabc", 0)
	require.Error(t, err)
	assert.Equal(t, []string{"vid1", "vid2"}, ids)
}

func TestSourceFetchVideoNormalizes(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"id":"vid1","snippet":{"title":"T","channelId":"UCabc"},"statistics":{"viewCount":"9"}}]}`)
	})

	v, err := src.FetchVideo(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Equal(t, "UCabc", v.ChannelID)
	require.NotNil(t, v.ViewCount)
	assert.Equal(t, int64(9), *v.ViewCount)
}

func TestSourceCommentPageNormalizes(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"id":"th1","snippet":{"topLevelComment":{"id":"top1","snippet":{"textDisplay":"hi"}}},"replies":{"comments":[{"id":"rep1","snippet":{}}]}}]}`)
	})

	page, err := src.CommentPage(context.Background(), "vid1", "")
	require.NoError(t, err)
	require.Len(t, page.Threads, 1)
	require.Len(t, page.Threads[0].Replies, 1)
	require.NotNil(t, page.Threads[0].Replies[0].ParentID)
	assert.Equal(t, "top1", *page.Threads[0].Replies[0].ParentID)
}
