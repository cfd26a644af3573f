// Package memory provides an in-memory Store for development and testing.
package memory

import (
	"context"
	"sync"

	"github.com/grigmv/ytingest/internal/ingest"
)

// Store implements ingest.Store on maps keyed by natural key. It enforces
// the same foreign-key ordering the relational schema does, so orchestrator
// tests exercise the real sequencing invariants.
type Store struct {
	mu        sync.RWMutex
	channels  map[string]ingest.Channel
	videos    map[string]ingest.Video
	comments  map[string]ingest.Comment
	subtitles map[string][]ingest.Subtitle
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		channels:  make(map[string]ingest.Channel),
		videos:    make(map[string]ingest.Video),
		comments:  make(map[string]ingest.Comment),
		subtitles: make(map[string][]ingest.Subtitle),
	}
}

// ChannelExists reports whether the channel was already ingested.
func (s *Store) ChannelExists(_ context.Context, channelID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.channels[channelID]
	return ok, nil
}

// VideoExists reports whether the video was already ingested.
func (s *Store) VideoExists(_ context.Context, videoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.videos[videoID]
	return ok, nil
}

// CommentExists reports whether the comment was already ingested.
func (s *Store) CommentExists(_ context.Context, commentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.comments[commentID]
	return ok, nil
}

// InsertChannel appends a channel row.
func (s *Store) InsertChannel(_ context.Context, ch ingest.Channel) (ingest.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[ch.ChannelID]; ok {
		return ingest.WriteSkippedDuplicate, nil
	}
	s.channels[ch.ChannelID] = ch
	return ingest.WriteApplied, nil
}

// InsertVideo appends a video row, enforcing the channel foreign key.
func (s *Store) InsertVideo(_ context.Context, v ingest.Video) (ingest.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[v.VideoID]; ok {
		return ingest.WriteSkippedDuplicate, nil
	}
	if _, ok := s.channels[v.ChannelID]; !ok {
		return 0, &ingest.ConstraintViolation{
			Constraint: "videos_channel_id_fkey",
			Detail:     "channel " + v.ChannelID + " is not present",
		}
	}
	s.videos[v.VideoID] = v
	return ingest.WriteApplied, nil
}

// InsertComment appends a comment row, enforcing the video and parent
// foreign keys.
func (s *Store) InsertComment(_ context.Context, c ingest.Comment) (ingest.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[c.CommentID]; ok {
		return ingest.WriteSkippedDuplicate, nil
	}
	if _, ok := s.videos[c.VideoID]; !ok {
		return 0, &ingest.ConstraintViolation{
			Constraint: "comments_video_id_fkey",
			Detail:     "video " + c.VideoID + " is not present",
		}
	}
	if c.ParentID != nil {
		if _, ok := s.comments[*c.ParentID]; !ok {
			return 0, &ingest.ConstraintViolation{
				Constraint: "comments_parent_id_fkey",
				Detail:     "parent comment " + *c.ParentID + " is not present",
			}
		}
	}
	s.comments[c.CommentID] = c
	return ingest.WriteApplied, nil
}

// InsertSubtitles appends subtitle rows for a video.
func (s *Store) InsertSubtitles(_ context.Context, subtitles []ingest.Subtitle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range subtitles {
		if _, ok := s.videos[sub.VideoID]; !ok {
			return &ingest.ConstraintViolation{
				Constraint: "subtitles_video_id_fkey",
				Detail:     "video " + sub.VideoID + " is not present",
			}
		}
		s.subtitles[sub.VideoID] = append(s.subtitles[sub.VideoID], sub)
	}
	return nil
}

// Channel returns an ingested channel by natural key (test helper).
func (s *Store) Channel(channelID string) (ingest.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ch, ok := s.channels[channelID]
	return ch, ok
}

// Video returns an ingested video by natural key (test helper).
func (s *Store) Video(videoID string) (ingest.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[videoID]
	return v, ok
}

// Comment returns an ingested comment by natural key (test helper).
func (s *Store) Comment(commentID string) (ingest.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[commentID]
	return c, ok
}

// Counts reports the table sizes (test helper).
func (s *Store) Counts() (channels, videos, comments, subtitles int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, subs := range s.subtitles {
		subtitles += len(subs)
	}
	return len(s.channels), len(s.videos), len(s.comments), subtitles
}
