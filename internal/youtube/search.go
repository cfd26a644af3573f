package youtube

import (
	"context"
	"net/url"
	"strconv"
)

const videoKind = "youtube#video"

// SearchPager walks the channel's uploads via the search endpoint, newest
// first. It is a finite, non-restartable sequence: each Next call issues one
// page request and follows the continuation token of the previous response.
type SearchPager struct {
	client    *Client
	channelID string
	pageSize  int

	// cap is the total number of ids to yield; 0 means unbounded until the
	// first response reports how many exist.
	cap       int
	yielded   int
	pageToken string
	started   bool
	done      bool
}

// RecentVideos builds a pager over the channel's recent uploads. max bounds
// the total ids yielded; 0 means everything the endpoint reports.
func (c *Client) RecentVideos(channelID string, max int) *SearchPager {
	return &SearchPager{
		client:    c,
		channelID: channelID,
		pageSize:  c.cfg.SearchPageSize,
		cap:       max,
	}
}

// Done reports whether the sequence is exhausted.
func (p *SearchPager) Done() bool {
	return p.done
}

// Next fetches one page and returns its video ids. It returns an empty slice
// once the sequence is exhausted. A page failure ends the sequence and
// surfaces the error; ids from earlier pages remain valid.
func (p *SearchPager) Next(ctx context.Context) ([]string, error) {
	if p.done {
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("channelId", p.channelID)
	params.Set("order", "date")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(p.pageSize))
	if p.pageToken != "" {
		params.Set("pageToken", p.pageToken)
	}

	var resp searchListResponse
	if err := p.client.getJSON(ctx, "search", params, &resp); err != nil {
		p.done = true
		return nil, err
	}

	// The endpoint reports the true result total on every page. Lowering the
	// cap to it on the first page prevents waiting on a continuation token
	// that will never cover more than what exists.
	if !p.started {
		p.started = true
		if p.cap == 0 || resp.PageInfo.TotalResults < p.cap {
			p.cap = resp.PageInfo.TotalResults
		}
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.Kind != videoKind || item.ID.VideoID == "" {
			continue
		}
		if p.cap > 0 && p.yielded+len(ids) >= p.cap {
			break
		}
		ids = append(ids, item.ID.VideoID)
	}
	p.yielded += len(ids)
	p.pageToken = resp.NextPageToken

	if p.pageToken == "" || (p.cap > 0 && p.yielded >= p.cap) || p.cap == 0 {
		p.done = true
	}
	return ids, nil
}
