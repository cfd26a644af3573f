package youtube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/grigmv/ytingest/internal/ingest"
)

const videoParts = "snippet,contentDetails,status,statistics"

// VideoDetail fetches the full video resource for one video id.
func (c *Client) VideoDetail(ctx context.Context, videoID string) (RawVideo, error) {
	params := url.Values{}
	params.Set("part", videoParts)
	params.Set("id", videoID)

	var resp videoListResponse
	if err := c.getJSON(ctx, "videos", params, &resp); err != nil {
		return RawVideo{}, err
	}
	if len(resp.Items) == 0 {
		return RawVideo{}, fmt.Errorf("%w: video %s", ingest.ErrNotFound, videoID)
	}
	return resp.Items[0], nil
}
