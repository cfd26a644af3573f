package youtube

import (
	"context"
	"net/url"
	"strconv"
)

// ThreadPageSize is the comment-threads endpoint maximum. Thread pagination
// always requests full pages; replies arrive inline with their parent.
const ThreadPageSize = 100

// CommentThreadPage fetches one page of comment threads for a video. An
// empty pageToken requests the first page; the caller follows NextPageToken
// until it comes back empty.
func (c *Client) CommentThreadPage(ctx context.Context, videoID, pageToken string) (RawCommentPage, error) {
	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoID)
	params.Set("textFormat", "plainText")
	params.Set("maxResults", strconv.Itoa(ThreadPageSize))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp RawCommentPage
	if err := c.getJSON(ctx, "commentThreads", params, &resp); err != nil {
		return RawCommentPage{}, err
	}
	return resp, nil
}
