package postgres

// schemaDDL creates the four ingestion tables. Natural keys carry unique
// indexes; foreign keys encode the write ordering the orchestrator honors.
// Counters and flags are nullable: NULL means the source never reported the
// value, which is distinct from a reported zero.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS channels (
	id                        BIGSERIAL PRIMARY KEY,
	channel_id                TEXT NOT NULL UNIQUE,
	title                     TEXT NOT NULL,
	description               TEXT,
	custom_url                TEXT,
	published_at              TIMESTAMPTZ,
	thumbnail                 TEXT,
	localized_title           TEXT,
	localized_description     TEXT,
	country                   TEXT,
	related_playlist_likes    TEXT,
	related_playlist_uploads  TEXT,
	view_count                BIGINT,
	subscriber_count          BIGINT,
	hidden_subscriber_count   BOOLEAN,
	video_count               BIGINT,
	topic_categories          TEXT[],
	privacy_status            TEXT,
	is_linked                 BOOLEAN,
	long_uploads_status       TEXT,
	made_for_kids             BOOLEAN,
	branding_title            TEXT,
	branding_description      TEXT,
	branding_keywords         TEXT,
	branding_trailer          TEXT,
	created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS videos (
	id                       BIGSERIAL PRIMARY KEY,
	video_id                 TEXT NOT NULL UNIQUE,
	channel_id               TEXT NOT NULL REFERENCES channels (channel_id),
	title                    TEXT NOT NULL,
	description              TEXT,
	published_at             TIMESTAMPTZ,
	thumbnail                TEXT,
	channel_title            TEXT,
	tags                     TEXT[],
	live_broadcast_content   TEXT,
	default_language         TEXT,
	default_audio_language   TEXT,
	category_id              TEXT,
	duration                 TEXT,
	dimension                TEXT,
	definition               TEXT,
	caption                  TEXT,
	licensed_content         BOOLEAN,
	upload_status            TEXT,
	privacy_status           TEXT,
	license                  TEXT,
	embeddable               BOOLEAN,
	public_stats_viewable    BOOLEAN,
	made_for_kids            BOOLEAN,
	view_count               BIGINT,
	like_count               BIGINT,
	favorite_count           BIGINT,
	comment_count            BIGINT,
	likes_external           BIGINT,
	dislikes_external        BIGINT,
	rating_external          DOUBLE PRECISION,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS comments (
	id                        BIGSERIAL PRIMARY KEY,
	comment_id                TEXT NOT NULL UNIQUE,
	video_id                  TEXT NOT NULL REFERENCES videos (video_id),
	channel_id                TEXT,
	parent_id                 TEXT REFERENCES comments (comment_id),
	author_display_name       TEXT,
	author_profile_image_url  TEXT,
	author_channel_url        TEXT,
	author_channel_id         TEXT,
	text_display              TEXT,
	text_original             TEXT,
	can_rate                  BOOLEAN,
	viewer_rating             TEXT,
	like_count                BIGINT,
	published_at              TIMESTAMPTZ,
	updated_at                TIMESTAMPTZ,
	created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS subtitles (
	id            BIGSERIAL PRIMARY KEY,
	video_id      TEXT NOT NULL REFERENCES videos (video_id),
	text          TEXT NOT NULL,
	start_offset  DOUBLE PRECISION NOT NULL,
	duration      DOUBLE PRECISION NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_videos_channel_id   ON videos (channel_id);
CREATE INDEX IF NOT EXISTS idx_comments_video_id   ON comments (video_id);
CREATE INDEX IF NOT EXISTS idx_comments_parent_id  ON comments (parent_id);
CREATE INDEX IF NOT EXISTS idx_subtitles_video_id  ON subtitles (video_id);
`
