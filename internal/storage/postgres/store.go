// Package postgres provides the Postgres-backed persistence implementation.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grigmv/ytingest/internal/ingest"
)

// Postgres error codes the store maps onto the ingest taxonomy.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Store implements ingest.Store on a pgx pool. The unique indexes on the
// natural-key columns are the final dedup guarantee: an insert losing a race
// against a concurrent writer comes back as a skip, not an error.
type Store struct {
	pool dbPool
}

// NewStore connects a pool using the provided config.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewStoreWithPool constructs a store from an existing pool (primarily for
// testing).
func NewStoreWithPool(pool dbPool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// EnsureSchema creates the four tables and their indexes when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", mapStoreError(err))
	}
	return nil
}

// ChannelExists reports whether a channel row with the natural key exists.
func (s *Store) ChannelExists(ctx context.Context, channelID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM channels WHERE channel_id = $1)`, channelID)
}

// VideoExists reports whether a video row with the natural key exists.
func (s *Store) VideoExists(ctx context.Context, videoID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM videos WHERE video_id = $1)`, videoID)
}

// CommentExists reports whether a comment row with the natural key exists.
func (s *Store) CommentExists(ctx context.Context, commentID string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE comment_id = $1)`, commentID)
}

func (s *Store) exists(ctx context.Context, query, key string) (bool, error) {
	var found bool
	if err := s.pool.QueryRow(ctx, query, key).Scan(&found); err != nil {
		return false, mapStoreError(err)
	}
	return found, nil
}

// InsertChannel appends one channel row.
func (s *Store) InsertChannel(ctx context.Context, ch ingest.Channel) (ingest.WriteResult, error) {
	query := `
INSERT INTO channels (
	channel_id, title, description, custom_url, published_at, thumbnail,
	localized_title, localized_description, country,
	related_playlist_likes, related_playlist_uploads,
	view_count, subscriber_count, hidden_subscriber_count, video_count,
	topic_categories, privacy_status, is_linked, long_uploads_status, made_for_kids,
	branding_title, branding_description, branding_keywords, branding_trailer
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24
)`
	args := []any{
		ch.ChannelID, ch.Title, ch.Description, ch.CustomURL, ch.PublishedAt, ch.Thumbnail,
		ch.LocalizedTitle, ch.LocalizedDescription, ch.Country,
		ch.RelatedPlaylistLikes, ch.RelatedPlaylistUploads,
		ch.ViewCount, ch.SubscriberCount, ch.HiddenSubscriberCount, ch.VideoCount,
		ch.TopicCategories, ch.PrivacyStatus, ch.IsLinked, ch.LongUploadsStatus, ch.MadeForKids,
		ch.BrandingTitle, ch.BrandingDescription, ch.BrandingKeywords, ch.BrandingTrailer,
	}
	return s.insert(ctx, query, args)
}

// InsertVideo appends one video row. The owning channel row must already
// exist.
func (s *Store) InsertVideo(ctx context.Context, v ingest.Video) (ingest.WriteResult, error) {
	query := `
INSERT INTO videos (
	video_id, channel_id, title, description, published_at, thumbnail, channel_title,
	tags, live_broadcast_content, default_language, default_audio_language, category_id,
	duration, dimension, definition, caption, licensed_content,
	upload_status, privacy_status, license, embeddable, public_stats_viewable, made_for_kids,
	view_count, like_count, favorite_count, comment_count,
	likes_external, dislikes_external, rating_external
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
	$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30
)`
	args := []any{
		v.VideoID, v.ChannelID, v.Title, v.Description, v.PublishedAt, v.Thumbnail, v.ChannelTitle,
		v.Tags, v.LiveBroadcastContent, v.DefaultLanguage, v.DefaultAudioLanguage, v.CategoryID,
		v.Duration, v.Dimension, v.Definition, v.Caption, v.LicensedContent,
		v.UploadStatus, v.PrivacyStatus, v.License, v.Embeddable, v.PublicStatsViewable, v.MadeForKids,
		v.ViewCount, v.LikeCount, v.FavoriteCount, v.CommentCount,
		v.LikesExternal, v.DislikesExternal, v.RatingExternal,
	}
	return s.insert(ctx, query, args)
}

// InsertComment appends one comment row. The owning video row, and for a
// reply the parent comment row, must already exist.
func (s *Store) InsertComment(ctx context.Context, c ingest.Comment) (ingest.WriteResult, error) {
	query := `
INSERT INTO comments (
	comment_id, video_id, channel_id, parent_id,
	author_display_name, author_profile_image_url, author_channel_url, author_channel_id,
	text_display, text_original, can_rate, viewer_rating, like_count,
	published_at, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15
)`
	args := []any{
		c.CommentID, c.VideoID, c.ChannelID, c.ParentID,
		c.AuthorDisplayName, c.AuthorProfileImageURL, c.AuthorChannelURL, c.AuthorChannelID,
		c.TextDisplay, c.TextOriginal, c.CanRate, c.ViewerRating, c.LikeCount,
		c.PublishedAt, c.UpdatedAt,
	}
	return s.insert(ctx, query, args)
}

// InsertSubtitles appends subtitle rows. Subtitles carry no natural key, so
// there is no dedup path.
func (s *Store) InsertSubtitles(ctx context.Context, subtitles []ingest.Subtitle) error {
	query := `INSERT INTO subtitles (video_id, text, start_offset, duration) VALUES ($1,$2,$3,$4)`
	for _, sub := range subtitles {
		if _, err := s.pool.Exec(ctx, query, sub.VideoID, sub.Text, sub.Start, sub.Duration); err != nil {
			return mapStoreError(err)
		}
	}
	return nil
}

func (s *Store) insert(ctx context.Context, query string, args []any) (ingest.WriteResult, error) {
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		mapped := mapStoreError(err)
		if errors.Is(mapped, errDuplicateKey) {
			return ingest.WriteSkippedDuplicate, nil
		}
		return 0, mapped
	}
	return ingest.WriteApplied, nil
}

// errDuplicateKey marks a unique-index clash. A concurrent writer beat us to
// the row; the entity is present either way.
var errDuplicateKey = errors.New("duplicate natural key")

func mapStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", errDuplicateKey, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return &ingest.ConstraintViolation{
				Constraint: pgErr.ConstraintName,
				Detail:     pgErr.Detail,
			}
		default:
			return fmt.Errorf("postgres error %s: %w", pgErr.Code, err)
		}
	}
	return fmt.Errorf("%w: %v", ingest.ErrStorageUnavailable, err)
}
