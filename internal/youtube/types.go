// Package youtube implements the client for the remote metadata API: handle
// resolution, channel and video detail lookups, and the paginated search and
// comment-thread endpoints. Responses are decoded into the typed raw schema
// below; package normalize turns them into entity records.
package youtube

// PageInfo reports the endpoint's view of the full result set.
type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// Thumbnail is one thumbnail rendition.
type Thumbnail struct {
	URL string `json:"url"`
}

// Thumbnails holds the renditions the API offers; only the default size is
// consumed downstream.
type Thumbnails struct {
	Default *Thumbnail `json:"default"`
}

// Localized carries the response-language title/description pair.
type Localized struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RawChannel is one item of a channel list response. Every part is optional;
// the API omits whole sub-objects the credential cannot see.
type RawChannel struct {
	ID               string                  `json:"id"`
	Snippet          *ChannelSnippet         `json:"snippet"`
	ContentDetails   *ChannelContentDetails  `json:"contentDetails"`
	Statistics       *ChannelStatistics      `json:"statistics"`
	TopicDetails     *TopicDetails           `json:"topicDetails"`
	Status           *ChannelStatus          `json:"status"`
	BrandingSettings *ChannelBrandingSettings `json:"brandingSettings"`
}

// ChannelSnippet is the channel's descriptive part.
type ChannelSnippet struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CustomURL   string      `json:"customUrl"`
	PublishedAt string      `json:"publishedAt"`
	Thumbnails  *Thumbnails `json:"thumbnails"`
	Localized   *Localized  `json:"localized"`
	Country     string      `json:"country"`
}

// RelatedPlaylists references the channel's automatic playlists.
type RelatedPlaylists struct {
	Likes   string `json:"likes"`
	Uploads string `json:"uploads"`
}

// ChannelContentDetails carries the related-playlist references.
type ChannelContentDetails struct {
	RelatedPlaylists *RelatedPlaylists `json:"relatedPlaylists"`
}

// ChannelStatistics carries the channel counters. The API serializes counts
// as decimal strings; absent means not reported, not zero.
type ChannelStatistics struct {
	ViewCount             *string `json:"viewCount"`
	SubscriberCount       *string `json:"subscriberCount"`
	HiddenSubscriberCount *bool   `json:"hiddenSubscriberCount"`
	VideoCount            *string `json:"videoCount"`
}

// TopicDetails lists the channel's topic category URLs.
type TopicDetails struct {
	TopicCategories []string `json:"topicCategories"`
}

// ChannelStatus carries the channel's visibility flags.
type ChannelStatus struct {
	PrivacyStatus     string `json:"privacyStatus"`
	IsLinked          *bool  `json:"isLinked"`
	LongUploadsStatus string `json:"longUploadsStatus"`
	MadeForKids       *bool  `json:"madeForKids"`
}

// BrandingChannel is the channel sub-object of brandingSettings.
type BrandingChannel struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Keywords            string `json:"keywords"`
	UnsubscribedTrailer string `json:"unsubscribedTrailer"`
}

// ChannelBrandingSettings carries the creator-set branding strings.
type ChannelBrandingSettings struct {
	Channel *BrandingChannel `json:"channel"`
}

type channelListResponse struct {
	Items    []RawChannel `json:"items"`
	PageInfo PageInfo     `json:"pageInfo"`
}

// RawVideo is one item of a video list response.
type RawVideo struct {
	ID             string               `json:"id"`
	Snippet        *VideoSnippet        `json:"snippet"`
	ContentDetails *VideoContentDetails `json:"contentDetails"`
	Status         *VideoStatus         `json:"status"`
	Statistics     *VideoStatistics     `json:"statistics"`
}

// VideoSnippet is the video's descriptive part.
type VideoSnippet struct {
	PublishedAt          string      `json:"publishedAt"`
	ChannelID            string      `json:"channelId"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Thumbnails           *Thumbnails `json:"thumbnails"`
	ChannelTitle         string      `json:"channelTitle"`
	Tags                 []string    `json:"tags"`
	CategoryID           string      `json:"categoryId"`
	LiveBroadcastContent string      `json:"liveBroadcastContent"`
	DefaultLanguage      string      `json:"defaultLanguage"`
	DefaultAudioLanguage string      `json:"defaultAudioLanguage"`
}

// VideoContentDetails carries the technical video attributes.
type VideoContentDetails struct {
	Duration        string `json:"duration"`
	Dimension       string `json:"dimension"`
	Definition      string `json:"definition"`
	Caption         string `json:"caption"`
	LicensedContent *bool  `json:"licensedContent"`
}

// VideoStatus carries upload, privacy and license flags.
type VideoStatus struct {
	UploadStatus        string `json:"uploadStatus"`
	PrivacyStatus       string `json:"privacyStatus"`
	License             string `json:"license"`
	Embeddable          *bool  `json:"embeddable"`
	PublicStatsViewable *bool  `json:"publicStatsViewable"`
	MadeForKids         *bool  `json:"madeForKids"`
}

// VideoStatistics carries the video counters as decimal strings.
type VideoStatistics struct {
	ViewCount     *string `json:"viewCount"`
	LikeCount     *string `json:"likeCount"`
	FavoriteCount *string `json:"favoriteCount"`
	CommentCount  *string `json:"commentCount"`
}

type videoListResponse struct {
	Items    []RawVideo `json:"items"`
	PageInfo PageInfo   `json:"pageInfo"`
}

type searchItemID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type searchItem struct {
	ID searchItemID `json:"id"`
}

type searchListResponse struct {
	Items         []searchItem `json:"items"`
	NextPageToken string       `json:"nextPageToken"`
	PageInfo      PageInfo     `json:"pageInfo"`
}

// AuthorChannelID wraps the nested channel-id value of a comment author.
type AuthorChannelID struct {
	Value string `json:"value"`
}

// CommentSnippet is the payload of a single comment or reply. likeCount and
// canRate arrive as JSON scalars, everything else as strings.
type CommentSnippet struct {
	AuthorDisplayName     string           `json:"authorDisplayName"`
	AuthorProfileImageURL string           `json:"authorProfileImageUrl"`
	AuthorChannelURL      string           `json:"authorChannelUrl"`
	AuthorChannelID       *AuthorChannelID `json:"authorChannelId"`
	ChannelID             string           `json:"channelId"`
	VideoID               string           `json:"videoId"`
	TextDisplay           string           `json:"textDisplay"`
	TextOriginal          string           `json:"textOriginal"`
	ParentID              string           `json:"parentId"`
	CanRate               *bool            `json:"canRate"`
	ViewerRating          string           `json:"viewerRating"`
	LikeCount             *int64           `json:"likeCount"`
	PublishedAt           string           `json:"publishedAt"`
	UpdatedAt             string           `json:"updatedAt"`
}

// RawComment is one comment resource.
type RawComment struct {
	ID      string          `json:"id"`
	Snippet *CommentSnippet `json:"snippet"`
}

// ThreadSnippet holds the top-level comment of a thread.
type ThreadSnippet struct {
	TopLevelComment *RawComment `json:"topLevelComment"`
	TotalReplyCount int         `json:"totalReplyCount"`
}

// ThreadReplies holds the inline replies of a thread. Replies arrive fully in
// the parent page; there is no separate reply pagination.
type ThreadReplies struct {
	Comments []RawComment `json:"comments"`
}

// RawCommentThread is one comment thread: a top-level comment plus inline
// replies.
type RawCommentThread struct {
	ID      string         `json:"id"`
	Snippet *ThreadSnippet `json:"snippet"`
	Replies *ThreadReplies `json:"replies"`
}

// RawCommentPage is one page of the comment-threads endpoint.
type RawCommentPage struct {
	Items         []RawCommentThread `json:"items"`
	NextPageToken string             `json:"nextPageToken"`
}
