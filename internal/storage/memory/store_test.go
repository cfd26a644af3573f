package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigmv/ytingest/internal/ingest"
)

func TestStoreInsertOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.InsertVideo(ctx, ingest.Video{VideoID: "v1", ChannelID: "c1"})
	var cv *ingest.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "videos_channel_id_fkey", cv.Constraint)

	res, err := store.InsertChannel(ctx, ingest.Channel{ChannelID: "c1", Title: "News"})
	require.NoError(t, err)
	assert.Equal(t, ingest.WriteApplied, res)

	res, err = store.InsertVideo(ctx, ingest.Video{VideoID: "v1", ChannelID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, ingest.WriteApplied, res)
}

func TestStoreDuplicateSkips(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.InsertChannel(ctx, ingest.Channel{ChannelID: "c1"})
	require.NoError(t, err)

	res, err := store.InsertChannel(ctx, ingest.Channel{ChannelID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, ingest.WriteSkippedDuplicate, res)

	ok, err := store.ChannelExists(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStoreCommentParentConstraint(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.InsertChannel(ctx, ingest.Channel{ChannelID: "c1"})
	require.NoError(t, err)
	_, err = store.InsertVideo(ctx, ingest.Video{VideoID: "v1", ChannelID: "c1"})
	require.NoError(t, err)

	parent := "top"
	_, err = store.InsertComment(ctx, ingest.Comment{CommentID: "reply", VideoID: "v1", ParentID: &parent})
	var cv *ingest.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "comments_parent_id_fkey", cv.Constraint)

	_, err = store.InsertComment(ctx, ingest.Comment{CommentID: "top", VideoID: "v1"})
	require.NoError(t, err)
	res, err := store.InsertComment(ctx, ingest.Comment{CommentID: "reply", VideoID: "v1", ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, ingest.WriteApplied, res)
}

func TestStoreSubtitlesRequireVideo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.InsertSubtitles(ctx, []ingest.Subtitle{{VideoID: "missing", Text: "hi"}})
	var cv *ingest.ConstraintViolation
	require.ErrorAs(t, err, &cv)

	_, err = store.InsertChannel(ctx, ingest.Channel{ChannelID: "c1"})
	require.NoError(t, err)
	_, err = store.InsertVideo(ctx, ingest.Video{VideoID: "v1", ChannelID: "c1"})
	require.NoError(t, err)

	require.NoError(t, store.InsertSubtitles(ctx, []ingest.Subtitle{
		{VideoID: "v1", Text: "hello", Start: 0.0, Duration: 1.2},
		{VideoID: "v1", Text: "world", Start: 1.2, Duration: 0.8},
	}))
	_, _, _, subs := store.Counts()
	assert.Equal(t, 2, subs)
}
