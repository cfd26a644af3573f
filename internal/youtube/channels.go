package youtube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/grigmv/ytingest/internal/ingest"
)

const channelParts = "snippet,contentDetails,statistics,topicDetails,status,brandingSettings"

// ChannelDetail fetches the full channel resource for one channel id. Any
// response part may be absent; decoding tolerates every subset.
func (c *Client) ChannelDetail(ctx context.Context, channelID string) (RawChannel, error) {
	params := url.Values{}
	params.Set("part", channelParts)
	params.Set("id", channelID)

	var resp channelListResponse
	if err := c.getJSON(ctx, "channels", params, &resp); err != nil {
		return RawChannel{}, err
	}
	if len(resp.Items) == 0 {
		return RawChannel{}, fmt.Errorf("%w: channel %s", ingest.ErrNotFound, channelID)
	}
	return resp.Items[0], nil
}
