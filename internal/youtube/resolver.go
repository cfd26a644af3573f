package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/grigmv/ytingest/internal/ingest"
)

var handlePattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/@([a-zA-Z0-9._-]+)`)

// ExtractHandle pulls the @handle out of a channel URL. It fails with
// ErrInvalidReference when the URL carries no handle.
func ExtractHandle(channelURL string) (string, error) {
	m := handlePattern.FindStringSubmatch(channelURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ingest.ErrInvalidReference, channelURL)
	}
	return m[1], nil
}

// ResolveChannelID turns a human-facing channel URL into the stable channel
// id via the handle-lookup endpoint. No retries happen here beyond the shared
// HTTP layer's policy.
func (c *Client) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	handle, err := ExtractHandle(channelURL)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", "@"+handle)

	var resp channelListResponse
	if err := c.getJSON(ctx, "channels", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: channel handle @%s", ingest.ErrNotFound, handle)
	}
	return resp.Items[0].ID, nil
}
