// Package normalize maps the typed raw API schema into flat entity records.
// The mapping is pure and defensive: any optional part or field may be absent
// and becomes a nil attribute. Missing numeric counters stay nil so "not
// reported" never collapses into "reported as zero". Only the entity's own
// identity is mandatory; a payload without it is malformed.
package normalize

import (
	"net/http"
	"strconv"
	"time"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/youtube"
)

// Channel flattens a raw channel resource.
func Channel(raw youtube.RawChannel) (ingest.Channel, error) {
	if raw.ID == "" || raw.Snippet == nil || raw.Snippet.Title == "" {
		return ingest.Channel{}, &ingest.UpstreamError{
			Status:   http.StatusOK,
			Endpoint: "channels",
			Detail:   "channel item missing id or snippet.title",
		}
	}

	ch := ingest.Channel{
		ChannelID:            raw.ID,
		Title:                raw.Snippet.Title,
		Description:          strPtr(raw.Snippet.Description),
		CustomURL:            strPtr(raw.Snippet.CustomURL),
		PublishedAt:          timePtr(raw.Snippet.PublishedAt),
		Thumbnail:            thumbnailURL(raw.Snippet.Thumbnails),
		Country:              strPtr(raw.Snippet.Country),
	}
	if raw.Snippet.Localized != nil {
		ch.LocalizedTitle = strPtr(raw.Snippet.Localized.Title)
		ch.LocalizedDescription = strPtr(raw.Snippet.Localized.Description)
	}
	if raw.ContentDetails != nil && raw.ContentDetails.RelatedPlaylists != nil {
		ch.RelatedPlaylistLikes = strPtr(raw.ContentDetails.RelatedPlaylists.Likes)
		ch.RelatedPlaylistUploads = strPtr(raw.ContentDetails.RelatedPlaylists.Uploads)
	}
	if raw.Statistics != nil {
		ch.ViewCount = countPtr(raw.Statistics.ViewCount)
		ch.SubscriberCount = countPtr(raw.Statistics.SubscriberCount)
		ch.HiddenSubscriberCount = raw.Statistics.HiddenSubscriberCount
		ch.VideoCount = countPtr(raw.Statistics.VideoCount)
	}
	if raw.TopicDetails != nil {
		ch.TopicCategories = raw.TopicDetails.TopicCategories
	}
	if raw.Status != nil {
		ch.PrivacyStatus = strPtr(raw.Status.PrivacyStatus)
		ch.IsLinked = raw.Status.IsLinked
		ch.LongUploadsStatus = strPtr(raw.Status.LongUploadsStatus)
		ch.MadeForKids = raw.Status.MadeForKids
	}
	if raw.BrandingSettings != nil && raw.BrandingSettings.Channel != nil {
		ch.BrandingTitle = strPtr(raw.BrandingSettings.Channel.Title)
		ch.BrandingDescription = strPtr(raw.BrandingSettings.Channel.Description)
		ch.BrandingKeywords = strPtr(raw.BrandingSettings.Channel.Keywords)
		ch.BrandingTrailer = strPtr(raw.BrandingSettings.Channel.UnsubscribedTrailer)
	}
	return ch, nil
}

// Video flattens a raw video resource.
func Video(raw youtube.RawVideo) (ingest.Video, error) {
	if raw.ID == "" || raw.Snippet == nil || raw.Snippet.Title == "" || raw.Snippet.ChannelID == "" {
		return ingest.Video{}, &ingest.UpstreamError{
			Status:   http.StatusOK,
			Endpoint: "videos",
			Detail:   "video item missing id, snippet.title or snippet.channelId",
		}
	}

	v := ingest.Video{
		VideoID:              raw.ID,
		ChannelID:            raw.Snippet.ChannelID,
		Title:                raw.Snippet.Title,
		Description:          strPtr(raw.Snippet.Description),
		PublishedAt:          timePtr(raw.Snippet.PublishedAt),
		Thumbnail:            thumbnailURL(raw.Snippet.Thumbnails),
		ChannelTitle:         strPtr(raw.Snippet.ChannelTitle),
		Tags:                 raw.Snippet.Tags,
		LiveBroadcastContent: strPtr(raw.Snippet.LiveBroadcastContent),
		DefaultLanguage:      strPtr(raw.Snippet.DefaultLanguage),
		DefaultAudioLanguage: strPtr(raw.Snippet.DefaultAudioLanguage),
		CategoryID:           strPtr(raw.Snippet.CategoryID),
	}
	if raw.ContentDetails != nil {
		v.Duration = strPtr(raw.ContentDetails.Duration)
		v.Dimension = strPtr(raw.ContentDetails.Dimension)
		v.Definition = strPtr(raw.ContentDetails.Definition)
		v.Caption = strPtr(raw.ContentDetails.Caption)
		v.LicensedContent = raw.ContentDetails.LicensedContent
	}
	if raw.Status != nil {
		v.UploadStatus = strPtr(raw.Status.UploadStatus)
		v.PrivacyStatus = strPtr(raw.Status.PrivacyStatus)
		v.License = strPtr(raw.Status.License)
		v.Embeddable = raw.Status.Embeddable
		v.PublicStatsViewable = raw.Status.PublicStatsViewable
		v.MadeForKids = raw.Status.MadeForKids
	}
	if raw.Statistics != nil {
		v.ViewCount = countPtr(raw.Statistics.ViewCount)
		v.LikeCount = countPtr(raw.Statistics.LikeCount)
		v.FavoriteCount = countPtr(raw.Statistics.FavoriteCount)
		v.CommentCount = countPtr(raw.Statistics.CommentCount)
	}
	return v, nil
}

// Comment flattens one comment resource. videoID binds the comment to its
// video; parentID is nil for a top-level comment and the top-level comment's
// id for an inline reply.
func Comment(raw youtube.RawComment, videoID string, parentID *string) (ingest.Comment, error) {
	if raw.ID == "" || raw.Snippet == nil {
		return ingest.Comment{}, &ingest.UpstreamError{
			Status:   http.StatusOK,
			Endpoint: "commentThreads",
			Detail:   "comment item missing id or snippet",
		}
	}

	c := ingest.Comment{
		CommentID:             raw.ID,
		VideoID:               videoID,
		ChannelID:             strPtr(raw.Snippet.ChannelID),
		ParentID:              parentID,
		AuthorDisplayName:     strPtr(raw.Snippet.AuthorDisplayName),
		AuthorProfileImageURL: strPtr(raw.Snippet.AuthorProfileImageURL),
		AuthorChannelURL:      strPtr(raw.Snippet.AuthorChannelURL),
		TextDisplay:           strPtr(raw.Snippet.TextDisplay),
		TextOriginal:          strPtr(raw.Snippet.TextOriginal),
		CanRate:               raw.Snippet.CanRate,
		ViewerRating:          strPtr(raw.Snippet.ViewerRating),
		LikeCount:             raw.Snippet.LikeCount,
		PublishedAt:           timePtr(raw.Snippet.PublishedAt),
		UpdatedAt:             timePtr(raw.Snippet.UpdatedAt),
	}
	if raw.Snippet.AuthorChannelID != nil {
		c.AuthorChannelID = strPtr(raw.Snippet.AuthorChannelID.Value)
	}
	return c, nil
}

// CommentPage flattens one raw thread page: each thread becomes its top-level
// comment plus replies already pointing at the top-level comment's key.
func CommentPage(raw youtube.RawCommentPage, videoID string) (ingest.CommentPage, error) {
	page := ingest.CommentPage{NextPageToken: raw.NextPageToken}
	for _, item := range raw.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil {
			return ingest.CommentPage{}, &ingest.UpstreamError{
				Status:   http.StatusOK,
				Endpoint: "commentThreads",
				Detail:   "thread item missing topLevelComment",
			}
		}
		top, err := Comment(*item.Snippet.TopLevelComment, videoID, nil)
		if err != nil {
			return ingest.CommentPage{}, err
		}
		thread := ingest.CommentThread{TopLevel: top}
		if item.Replies != nil {
			parentID := top.CommentID
			for _, rawReply := range item.Replies.Comments {
				reply, err := Comment(rawReply, videoID, &parentID)
				if err != nil {
					return ingest.CommentPage{}, err
				}
				thread.Replies = append(thread.Replies, reply)
			}
		}
		page.Threads = append(page.Threads, thread)
	}
	return page, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func countPtr(s *string) *int64 {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func timePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func thumbnailURL(t *youtube.Thumbnails) *string {
	if t == nil || t.Default == nil {
		return nil
	}
	return strPtr(t.Default.URL)
}
