// Package ingest defines core entity types and interfaces shared across the
// ingestion subsystems.
package ingest

import "time"

// Channel is the normalized record for a YouTube channel. The channel id is
// the platform-issued natural key; every other attribute is optional because
// the upstream API may withhold any response part.
type Channel struct {
	ChannelID              string     `json:"channel_id"`
	Title                  string     `json:"title"`
	Description            *string    `json:"description,omitempty"`
	CustomURL              *string    `json:"custom_url,omitempty"`
	PublishedAt            *time.Time `json:"published_at,omitempty"`
	Thumbnail              *string    `json:"thumbnail,omitempty"`
	LocalizedTitle         *string    `json:"localized_title,omitempty"`
	LocalizedDescription   *string    `json:"localized_description,omitempty"`
	Country                *string    `json:"country,omitempty"`
	RelatedPlaylistLikes   *string    `json:"related_playlist_likes,omitempty"`
	RelatedPlaylistUploads *string    `json:"related_playlist_uploads,omitempty"`
	ViewCount              *int64     `json:"view_count,omitempty"`
	SubscriberCount        *int64     `json:"subscriber_count,omitempty"`
	HiddenSubscriberCount  *bool      `json:"hidden_subscriber_count,omitempty"`
	VideoCount             *int64     `json:"video_count,omitempty"`
	TopicCategories        []string   `json:"topic_categories,omitempty"`
	PrivacyStatus          *string    `json:"privacy_status,omitempty"`
	IsLinked               *bool      `json:"is_linked,omitempty"`
	LongUploadsStatus      *string    `json:"long_uploads_status,omitempty"`
	MadeForKids            *bool      `json:"made_for_kids,omitempty"`
	BrandingTitle          *string    `json:"branding_title,omitempty"`
	BrandingDescription    *string    `json:"branding_description,omitempty"`
	BrandingKeywords       *string    `json:"branding_keywords,omitempty"`
	BrandingTrailer        *string    `json:"branding_trailer,omitempty"`
}

// Video is the normalized record for a single video. ChannelID references the
// owning channel and must be written before the video row.
type Video struct {
	VideoID              string     `json:"video_id"`
	ChannelID            string     `json:"channel_id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	PublishedAt          *time.Time `json:"published_at,omitempty"`
	Thumbnail            *string    `json:"thumbnail,omitempty"`
	ChannelTitle         *string    `json:"channel_title,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	LiveBroadcastContent *string    `json:"live_broadcast_content,omitempty"`
	DefaultLanguage      *string    `json:"default_language,omitempty"`
	DefaultAudioLanguage *string    `json:"default_audio_language,omitempty"`
	CategoryID           *string    `json:"category_id,omitempty"`
	Duration             *string    `json:"duration,omitempty"` // ISO-8601 period, e.g. PT4M13S
	Dimension            *string    `json:"dimension,omitempty"`
	Definition           *string    `json:"definition,omitempty"`
	Caption              *string    `json:"caption,omitempty"`
	LicensedContent      *bool      `json:"licensed_content,omitempty"`
	UploadStatus         *string    `json:"upload_status,omitempty"`
	PrivacyStatus        *string    `json:"privacy_status,omitempty"`
	License              *string    `json:"license,omitempty"`
	Embeddable           *bool      `json:"embeddable,omitempty"`
	PublicStatsViewable  *bool      `json:"public_stats_viewable,omitempty"`
	MadeForKids          *bool      `json:"made_for_kids,omitempty"`
	ViewCount            *int64     `json:"view_count,omitempty"`
	LikeCount            *int64     `json:"like_count,omitempty"`
	FavoriteCount        *int64     `json:"favorite_count,omitempty"`
	CommentCount         *int64     `json:"comment_count,omitempty"`
	LikesExternal        *int64     `json:"likes_external,omitempty"`
	DislikesExternal     *int64     `json:"dislikes_external,omitempty"`
	RatingExternal       *float64   `json:"rating_external,omitempty"`
}

// Comment is the normalized record for a top-level comment or a reply.
// ParentID is nil for top-level comments; a non-nil ParentID marks a reply to
// an existing top-level comment. The platform does not nest deeper than that.
type Comment struct {
	CommentID             string     `json:"comment_id"`
	VideoID               string     `json:"video_id"`
	ChannelID             *string    `json:"channel_id,omitempty"`
	ParentID              *string    `json:"parent_id,omitempty"`
	AuthorDisplayName     *string    `json:"author_display_name,omitempty"`
	AuthorProfileImageURL *string    `json:"author_profile_image_url,omitempty"`
	AuthorChannelURL      *string    `json:"author_channel_url,omitempty"`
	AuthorChannelID       *string    `json:"author_channel_id,omitempty"`
	TextDisplay           *string    `json:"text_display,omitempty"`
	TextOriginal          *string    `json:"text_original,omitempty"`
	CanRate               *bool      `json:"can_rate,omitempty"`
	ViewerRating          *string    `json:"viewer_rating,omitempty"`
	LikeCount             *int64     `json:"like_count,omitempty"`
	PublishedAt           *time.Time `json:"published_at,omitempty"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
}

// Subtitle is one transcript segment of a video. Subtitles carry no natural
// key and are only appended.
type Subtitle struct {
	VideoID  string  `json:"video_id"`
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// CommentThread is one top-level comment with its inline replies, as returned
// by a single comment-thread page.
type CommentThread struct {
	TopLevel Comment
	Replies  []Comment
}

// CommentPage is one page of comment threads. An empty NextPageToken marks
// the last page.
type CommentPage struct {
	Threads       []CommentThread
	NextPageToken string
}

// Votes is the like/dislike triple reported by the ancillary votes API.
type Votes struct {
	Likes    int64
	Dislikes int64
	Rating   float64
}

// State classifies the terminal outcome of an ingestion request.
type State string

// Terminal states reported by the orchestrator entry points.
const (
	StateCompleted      State = "completed"
	StatePartial        State = "partially_completed"
	StateQuotaExhausted State = "quota_exhausted"
	StateFailed         State = "failed"
)

// ResumeToken carries enough state to resume a suspended video's comment
// ingestion from the next continuation token.
type ResumeToken struct {
	VideoID   string `json:"video_id"`
	PageToken string `json:"page_token"`
}

// Counters tracks what one ingestion request wrote and skipped.
type Counters struct {
	ChannelsWritten   int `json:"channels_written"`
	VideosWritten     int `json:"videos_written"`
	CommentsWritten   int `json:"comments_written"`
	SubtitlesWritten  int `json:"subtitles_written"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
	PagesFetched      int `json:"pages_fetched"`
}

// Outcome is what every entry point returns: a terminal state, counters, an
// optional resume token for the resumable states, and a human-readable reason
// for anything short of full completion.
type Outcome struct {
	State    State        `json:"state"`
	Counters Counters     `json:"counters"`
	Resume   *ResumeToken `json:"resume,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}

// Add merges the counters of a nested request into the receiver.
func (c *Counters) Add(other Counters) {
	c.ChannelsWritten += other.ChannelsWritten
	c.VideosWritten += other.VideosWritten
	c.CommentsWritten += other.CommentsWritten
	c.SubtitlesWritten += other.SubtitlesWritten
	c.DuplicatesSkipped += other.DuplicatesSkipped
	c.PagesFetched += other.PagesFetched
}
