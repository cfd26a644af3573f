package normalize

import (
	"context"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/youtube"
)

// Source pairs the API client with the mappers above, presenting the remote
// API to the orchestrator as already-normalized entities.
type Source struct {
	client *youtube.Client
}

// NewSource wraps a client.
func NewSource(client *youtube.Client) *Source {
	return &Source{client: client}
}

// ResolveChannelID delegates to the client's handle resolver.
func (s *Source) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	return s.client.ResolveChannelID(ctx, channelURL)
}

// FetchChannel fetches and normalizes the channel detail.
func (s *Source) FetchChannel(ctx context.Context, channelID string) (ingest.Channel, error) {
	raw, err := s.client.ChannelDetail(ctx, channelID)
	if err != nil {
		return ingest.Channel{}, err
	}
	return Channel(raw)
}

// FetchVideo fetches and normalizes the video detail.
func (s *Source) FetchVideo(ctx context.Context, videoID string) (ingest.Video, error) {
	raw, err := s.client.VideoDetail(ctx, videoID)
	if err != nil {
		return ingest.Video{}, err
	}
	return Video(raw)
}

// ListRecentVideoIDs drains the search pager. On a mid-pagination failure the
// ids gathered so far come back with the error so the caller can treat the
// partial listing as usable.
func (s *Source) ListRecentVideoIDs(ctx context.Context, channelID string, max int) ([]string, error) {
	pager := s.client.RecentVideos(channelID, max)
	var ids []string
	for !pager.Done() {
		page, err := pager.Next(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, page...)
	}
	return ids, nil
}

// CommentPage fetches and normalizes one comment-thread page.
func (s *Source) CommentPage(ctx context.Context, videoID, pageToken string) (ingest.CommentPage, error) {
	raw, err := s.client.CommentThreadPage(ctx, videoID, pageToken)
	if err != nil {
		return ingest.CommentPage{}, err
	}
	return CommentPage(raw, videoID)
}
