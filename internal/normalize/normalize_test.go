package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/youtube"
)

func str(s string) *string { return &s }

func TestChannelFullPayload(t *testing.T) {
	t.Parallel()

	hidden := false
	raw := youtube.RawChannel{
		ID: "UCabc",
		Snippet: &youtube.ChannelSnippet{
			Title:       "News Channel",
			Description: "daily news",
			CustomURL:   "@newschannel",
			PublishedAt: "2019-04-01T12:00:00Z",
			Thumbnails:  &youtube.Thumbnails{Default: &youtube.Thumbnail{URL: "https://i.ytimg.com/ch.jpg"}},
			Localized:   &youtube.Localized{Title: "News Channel", Description: "daily news"},
			Country:     "US",
		},
		ContentDetails: &youtube.ChannelContentDetails{
			RelatedPlaylists: &youtube.RelatedPlaylists{Likes: "LLabc", Uploads: "UUabc"},
		},
		Statistics: &youtube.ChannelStatistics{
			ViewCount:             str("123456"),
			SubscriberCount:       str("1000"),
			HiddenSubscriberCount: &hidden,
			VideoCount:            str("42"),
		},
		TopicDetails: &youtube.TopicDetails{TopicCategories: []string{"https://en.wikipedia.org/wiki/News"}},
		Status:       &youtube.ChannelStatus{PrivacyStatus: "public", LongUploadsStatus: "allowed"},
		BrandingSettings: &youtube.ChannelBrandingSettings{
			Channel: &youtube.BrandingChannel{Title: "News", Keywords: "news daily"},
		},
	}

	ch, err := Channel(raw)
	require.NoError(t, err)
	assert.Equal(t, "UCabc", ch.ChannelID)
	assert.Equal(t, "News Channel", ch.Title)
	require.NotNil(t, ch.ViewCount)
	assert.Equal(t, int64(123456), *ch.ViewCount)
	require.NotNil(t, ch.PublishedAt)
	require.NotNil(t, ch.RelatedPlaylistUploads)
	assert.Equal(t, "UUabc", *ch.RelatedPlaylistUploads)
	require.NotNil(t, ch.HiddenSubscriberCount)
	assert.False(t, *ch.HiddenSubscriberCount)
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/News"}, ch.TopicCategories)
	require.NotNil(t, ch.BrandingKeywords)
	assert.Equal(t, "news daily", *ch.BrandingKeywords)
}

func TestChannelMissingPartsStayNil(t *testing.T) {
	t.Parallel()

	ch, err := Channel(youtube.RawChannel{
		ID:      "UCabc",
		Snippet: &youtube.ChannelSnippet{Title: "Bare"},
	})
	require.NoError(t, err)

	assert.Nil(t, ch.Description)
	assert.Nil(t, ch.ViewCount)
	assert.Nil(t, ch.SubscriberCount)
	assert.Nil(t, ch.HiddenSubscriberCount)
	assert.Nil(t, ch.PrivacyStatus)
	assert.Nil(t, ch.BrandingTitle)
	assert.Nil(t, ch.Thumbnail)
	assert.Nil(t, ch.TopicCategories)
}

func TestChannelMissingIdentityIsMalformed(t *testing.T) {
	t.Parallel()

	var upstream *ingest.UpstreamError

	_, err := Channel(youtube.RawChannel{Snippet: &youtube.ChannelSnippet{Title: "x"}})
	require.ErrorAs(t, err, &upstream)

	_, err = Channel(youtube.RawChannel{ID: "UCabc"})
	require.ErrorAs(t, err, &upstream)
}

func TestVideoMissingStatisticsStayNil(t *testing.T) {
	t.Parallel()

	v, err := Video(youtube.RawVideo{
		ID: "vid1",
		Snippet: &youtube.VideoSnippet{
			Title:     "A Video",
			ChannelID: "UCabc",
		},
	})
	require.NoError(t, err)

	assert.Nil(t, v.ViewCount)
	assert.Nil(t, v.LikeCount)
	assert.Nil(t, v.FavoriteCount)
	assert.Nil(t, v.CommentCount)
	assert.Nil(t, v.Duration)
	assert.Nil(t, v.UploadStatus)
}

func TestVideoUnparseableCountStaysNil(t *testing.T) {
	t.Parallel()

	v, err := Video(youtube.RawVideo{
		ID:         "vid1",
		Snippet:    &youtube.VideoSnippet{Title: "A Video", ChannelID: "UCabc"},
		Statistics: &youtube.VideoStatistics{ViewCount: str("not-a-number"), LikeCount: str("17")},
	})
	require.NoError(t, err)

	assert.Nil(t, v.ViewCount)
	require.NotNil(t, v.LikeCount)
	assert.Equal(t, int64(17), *v.LikeCount)
}

func TestVideoMissingIdentityIsMalformed(t *testing.T) {
	t.Parallel()

	var upstream *ingest.UpstreamError
	_, err := Video(youtube.RawVideo{ID: "vid1", Snippet: &youtube.VideoSnippet{Title: "no channel"}})
	require.ErrorAs(t, err, &upstream)
}

func TestCommentPageWiresReplyParents(t *testing.T) {
	t.Parallel()

	likeCount := int64(3)
	raw := youtube.RawCommentPage{
		NextPageToken: "page2",
		Items: []youtube.RawCommentThread{
			{
				ID: "thread1",
				Snippet: &youtube.ThreadSnippet{
					TopLevelComment: &youtube.RawComment{
						ID: "top1",
						Snippet: &youtube.CommentSnippet{
							TextDisplay: "first!",
							LikeCount:   &likeCount,
						},
					},
				},
				Replies: &youtube.ThreadReplies{
					Comments: []youtube.RawComment{
						{ID: "rep1", Snippet: &youtube.CommentSnippet{TextDisplay: "reply one"}},
						{ID: "rep2", Snippet: &youtube.CommentSnippet{TextDisplay: "reply two"}},
					},
				},
			},
		},
	}

	page, err := CommentPage(raw, "vid1")
	require.NoError(t, err)
	assert.Equal(t, "page2", page.NextPageToken)
	require.Len(t, page.Threads, 1)

	thread := page.Threads[0]
	assert.Equal(t, "top1", thread.TopLevel.CommentID)
	assert.Equal(t, "vid1", thread.TopLevel.VideoID)
	assert.Nil(t, thread.TopLevel.ParentID)
	require.NotNil(t, thread.TopLevel.LikeCount)
	assert.Equal(t, int64(3), *thread.TopLevel.LikeCount)

	require.Len(t, thread.Replies, 2)
	for _, reply := range thread.Replies {
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, "top1", *reply.ParentID)
		assert.Equal(t, "vid1", reply.VideoID)
	}
}

func TestCommentPageMalformedThread(t *testing.T) {
	t.Parallel()

	var upstream *ingest.UpstreamError
	_, err := CommentPage(youtube.RawCommentPage{
		Items: []youtube.RawCommentThread{{ID: "thread1"}},
	}, "vid1")
	require.ErrorAs(t, err, &upstream)
}

func TestCommentMissingTimestampsStayNil(t *testing.T) {
	t.Parallel()

	c, err := Comment(youtube.RawComment{
		ID:      "top1",
		Snippet: &youtube.CommentSnippet{TextDisplay: "hello"},
	}, "vid1", nil)
	require.NoError(t, err)

	assert.Nil(t, c.PublishedAt)
	assert.Nil(t, c.UpdatedAt)
	assert.Nil(t, c.LikeCount)
	assert.Nil(t, c.CanRate)
	assert.Nil(t, c.AuthorChannelID)
}
