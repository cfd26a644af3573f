package ingest

import (
	"context"
	"io"
	"time"
)

// WriteResult reports what a single insert attempt did.
type WriteResult int

// Insert outcomes. A concurrent writer may land the same natural key between
// the existence check and our insert; the store reports that as a skip, not
// an error.
const (
	WriteApplied WriteResult = iota
	WriteSkippedDuplicate
)

// Store is the persistence boundary: existence checks keyed on natural keys
// plus append-only inserts. No update or delete path exists by design of the
// ingestion model.
type Store interface {
	ChannelExists(ctx context.Context, channelID string) (bool, error)
	VideoExists(ctx context.Context, videoID string) (bool, error)
	CommentExists(ctx context.Context, commentID string) (bool, error)

	InsertChannel(ctx context.Context, channel Channel) (WriteResult, error)
	InsertVideo(ctx context.Context, video Video) (WriteResult, error)
	InsertComment(ctx context.Context, comment Comment) (WriteResult, error)
	InsertSubtitles(ctx context.Context, subtitles []Subtitle) error
}

// MetadataSource is the remote metadata API as the orchestrator consumes it:
// already resolved, fetched, and normalized into entity records.
type MetadataSource interface {
	// ResolveChannelID turns a channel URL or handle into the stable channel
	// id. Fails with ErrInvalidReference or ErrNotFound.
	ResolveChannelID(ctx context.Context, channelURL string) (string, error)

	// FetchChannel returns the full normalized channel detail.
	FetchChannel(ctx context.Context, channelID string) (Channel, error)

	// FetchVideo returns the full normalized video detail.
	FetchVideo(ctx context.Context, videoID string) (Video, error)

	// ListRecentVideoIDs paginates the channel's recent uploads, newest
	// first, up to max ids (0 means everything the endpoint reports). On a
	// mid-pagination failure the ids gathered so far are returned alongside
	// the error.
	ListRecentVideoIDs(ctx context.Context, channelID string, max int) ([]string, error)

	// CommentPage fetches one page of comment threads for a video. An empty
	// pageToken requests the first page.
	CommentPage(ctx context.Context, videoID, pageToken string) (CommentPage, error)
}

// VoteSource looks up supplementary vote counts for a video. Failures are
// non-fatal to ingestion.
type VoteSource interface {
	Votes(ctx context.Context, videoID string) (Votes, error)
}

// TranscriptSource fetches subtitle segments for a video. A video without a
// transcript yields an empty slice and no error.
type TranscriptSource interface {
	Transcript(ctx context.Context, videoID string) ([]Subtitle, error)
}

// BlobStore archives raw artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data io.Reader) (string, error)
}

// Publisher pushes ingestion events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Hasher computes digests for archive object naming.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
