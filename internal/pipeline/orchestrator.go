// Package pipeline drives ingestion requests end to end: resolve, fetch,
// normalize, dedup, write, in dependency order.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/metrics"
)

// Config controls Orchestrator behavior.
type Config struct {
	// Topic names the publish topic for completed video ingestions. Empty
	// disables publishing.
	Topic string
}

// Orchestrator sequences one ingestion request at a time. Referenced
// entities are always written before their dependents: channel before video,
// video before comments, top-level comment before its replies. Every write
// passes the existence gate first; the store's unique indexes catch the
// remaining races as benign skips.
type Orchestrator struct {
	source      ingest.MetadataSource
	store       ingest.Store
	votes       ingest.VoteSource
	transcripts ingest.TranscriptSource
	publisher   ingest.Publisher
	quota       *ingest.QuotaTracker
	cfg         Config
	logger      *zap.Logger
}

// New constructs an Orchestrator. votes, transcripts, publisher and quota
// may be nil; the corresponding step is skipped.
func New(
	source ingest.MetadataSource,
	store ingest.Store,
	votes ingest.VoteSource,
	transcripts ingest.TranscriptSource,
	publisher ingest.Publisher,
	quota *ingest.QuotaTracker,
	cfg Config,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		source:      source,
		store:       store,
		votes:       votes,
		transcripts: transcripts,
		publisher:   publisher,
		quota:       quota,
		cfg:         cfg,
		logger:      logger,
	}
}

// videoEvent is the payload published after a completed video ingestion.
type videoEvent struct {
	VideoID   string          `json:"video_id"`
	ChannelID string          `json:"channel_id"`
	State     ingest.State    `json:"state"`
	Counters  ingest.Counters `json:"counters"`
}

// IngestChannel resolves the channel reference, ensures the channel row
// exists, lists up to videoCount recent videos (0 means everything the
// endpoint reports) and ingests each one in turn.
func (o *Orchestrator) IngestChannel(ctx context.Context, channelURL string, videoCount int) ingest.Outcome {
	var counters ingest.Counters

	channelID, err := o.source.ResolveChannelID(ctx, channelURL)
	if err != nil {
		return o.finish(failed(counters, fmt.Sprintf("resolve channel: %v", err)))
	}
	log := o.logger.With(zap.String("channel_id", channelID))

	if err := o.ensureChannel(ctx, channelID, &counters); err != nil {
		log.Error("channel write failed", zap.Error(err))
		return o.finish(failed(counters, fmt.Sprintf("ensure channel: %v", err)))
	}

	ids, listErr := o.source.ListRecentVideoIDs(ctx, channelID, videoCount)
	if listErr != nil && len(ids) == 0 {
		if counters.ChannelsWritten == 0 {
			return o.finish(failed(counters, fmt.Sprintf("list videos: %v", listErr)))
		}
		return o.finish(ingest.Outcome{
			State:    ingest.StatePartial,
			Counters: counters,
			Reason:   fmt.Sprintf("list videos: %v", listErr),
		})
	}
	log.Info("listed recent videos", zap.Int("count", len(ids)))

	state := ingest.StateCompleted
	reason := ""
	var resume *ingest.ResumeToken
	for _, id := range ids {
		out, videoErr := o.ingestOne(ctx, id, "", channelID)
		counters.Add(out.Counters)
		if out.State == ingest.StateQuotaExhausted {
			return o.finish(ingest.Outcome{
				State:    ingest.StateQuotaExhausted,
				Counters: counters,
				Resume:   out.Resume,
				Reason:   out.Reason,
			})
		}
		if videoErr != nil {
			if storageFatal(videoErr) {
				return o.finish(failed(counters, out.Reason))
			}
			log.Warn("video ingestion incomplete", zap.String("video_id", id), zap.Error(videoErr))
			state = ingest.StatePartial
			if reason == "" {
				reason = out.Reason
			}
			if resume == nil {
				resume = out.Resume
			}
		}
	}
	if listErr != nil {
		state = ingest.StatePartial
		if reason == "" {
			reason = fmt.Sprintf("list videos: %v", listErr)
		}
	}

	return o.finish(ingest.Outcome{State: state, Counters: counters, Resume: resume, Reason: reason})
}

// IngestVideo ingests a single video and its comment threads. A non-empty
// resumePageToken continues comment pagination where a prior partial or
// quota-exhausted run stopped.
func (o *Orchestrator) IngestVideo(ctx context.Context, videoID, resumePageToken string) ingest.Outcome {
	out, _ := o.ingestOne(ctx, videoID, resumePageToken, "")
	return o.finish(out)
}

// ingestOne runs the per-video state machine. The returned error classifies
// anything short of completion; ensuredChannel skips the channel check when
// the caller already wrote it in this request.
func (o *Orchestrator) ingestOne(ctx context.Context, videoID, pageToken, ensuredChannel string) (ingest.Outcome, error) {
	var counters ingest.Counters
	log := o.logger.With(zap.String("video_id", videoID))

	video, err := o.source.FetchVideo(ctx, videoID)
	if err != nil {
		return failed(counters, fmt.Sprintf("fetch video: %v", err)), err
	}

	if video.ChannelID != ensuredChannel {
		if err := o.ensureChannel(ctx, video.ChannelID, &counters); err != nil {
			return failed(counters, fmt.Sprintf("ensure channel: %v", err)), err
		}
	}

	newVideo, err := o.writeVideo(ctx, video, &counters)
	if err != nil {
		return failed(counters, fmt.Sprintf("write video: %v", err)), err
	}

	if newVideo {
		o.writeSubtitles(ctx, videoID, &counters, log)
	}

	for {
		if err := o.quota.Charge(); err != nil {
			metrics.SetQuotaRemaining(o.quota.Remaining())
			log.Info("daily quota exhausted, suspending comment ingestion",
				zap.String("page_token", pageToken))
			return ingest.Outcome{
				State:    ingest.StateQuotaExhausted,
				Counters: counters,
				Resume:   &ingest.ResumeToken{VideoID: videoID, PageToken: pageToken},
				Reason:   "daily request quota exhausted",
			}, err
		}
		metrics.SetQuotaRemaining(o.quota.Remaining())

		page, err := o.source.CommentPage(ctx, videoID, pageToken)
		if err != nil {
			metrics.ObserveCommentPage("error")
			return ingest.Outcome{
				State:    ingest.StatePartial,
				Counters: counters,
				Resume:   &ingest.ResumeToken{VideoID: videoID, PageToken: pageToken},
				Reason:   fmt.Sprintf("fetch comment page: %v", err),
			}, err
		}
		counters.PagesFetched++
		metrics.ObserveCommentPage("ok")

		// One page's comments are written as a unit before the next page
		// is requested.
		for _, thread := range page.Threads {
			if err := o.writeComment(ctx, thread.TopLevel, &counters); err != nil {
				return failed(counters, fmt.Sprintf("write comment: %v", err)), err
			}
			for _, reply := range thread.Replies {
				if err := o.writeComment(ctx, reply, &counters); err != nil {
					return failed(counters, fmt.Sprintf("write reply: %v", err)), err
				}
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	out := ingest.Outcome{State: ingest.StateCompleted, Counters: counters}
	o.publish(ctx, videoEvent{
		VideoID:   videoID,
		ChannelID: video.ChannelID,
		State:     out.State,
		Counters:  counters,
	}, log)
	return out, nil
}

// ensureChannel writes the channel row when it is not present yet.
func (o *Orchestrator) ensureChannel(ctx context.Context, channelID string, counters *ingest.Counters) error {
	exists, err := o.store.ChannelExists(ctx, channelID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	channel, err := o.source.FetchChannel(ctx, channelID)
	if err != nil {
		return err
	}
	res, err := o.store.InsertChannel(ctx, channel)
	if err != nil {
		return err
	}
	if res == ingest.WriteSkippedDuplicate {
		counters.DuplicatesSkipped++
		metrics.ObserveDuplicateSkip("channel")
		return nil
	}
	counters.ChannelsWritten++
	metrics.ObserveEntityWritten("channel")
	return nil
}

// writeVideo merges ancillary vote counts and inserts the video row if
// absent. It reports whether this request wrote the row.
func (o *Orchestrator) writeVideo(ctx context.Context, video ingest.Video, counters *ingest.Counters) (bool, error) {
	exists, err := o.store.VideoExists(ctx, video.VideoID)
	if err != nil {
		return false, err
	}
	if exists {
		counters.DuplicatesSkipped++
		metrics.ObserveDuplicateSkip("video")
		return false, nil
	}

	// Vote lookup failures leave the external fields nil; they never block
	// ingestion.
	if o.votes != nil {
		if v, err := o.votes.Votes(ctx, video.VideoID); err != nil {
			o.logger.Warn("vote lookup failed", zap.String("video_id", video.VideoID), zap.Error(err))
		} else {
			video.LikesExternal = &v.Likes
			video.DislikesExternal = &v.Dislikes
			video.RatingExternal = &v.Rating
		}
	}

	res, err := o.store.InsertVideo(ctx, video)
	if err != nil {
		return false, err
	}
	if res == ingest.WriteSkippedDuplicate {
		counters.DuplicatesSkipped++
		metrics.ObserveDuplicateSkip("video")
		return false, nil
	}
	counters.VideosWritten++
	metrics.ObserveEntityWritten("video")
	return true, nil
}

// writeSubtitles harvests and stores the transcript for a newly written
// video. Transcript failures are logged and swallowed; subtitles carry no
// natural key, so they are only fetched on first observation.
func (o *Orchestrator) writeSubtitles(ctx context.Context, videoID string, counters *ingest.Counters, log *zap.Logger) {
	if o.transcripts == nil {
		return
	}
	subs, err := o.transcripts.Transcript(ctx, videoID)
	if err != nil {
		log.Warn("transcript fetch failed", zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}
	if err := o.store.InsertSubtitles(ctx, subs); err != nil {
		log.Warn("subtitle write failed", zap.Error(err))
		return
	}
	counters.SubtitlesWritten += len(subs)
	for range subs {
		metrics.ObserveEntityWritten("subtitle")
	}
}

// writeComment inserts one comment row if absent.
func (o *Orchestrator) writeComment(ctx context.Context, comment ingest.Comment, counters *ingest.Counters) error {
	exists, err := o.store.CommentExists(ctx, comment.CommentID)
	if err != nil {
		return err
	}
	if exists {
		counters.DuplicatesSkipped++
		metrics.ObserveDuplicateSkip("comment")
		return nil
	}
	res, err := o.store.InsertComment(ctx, comment)
	if err != nil {
		return err
	}
	if res == ingest.WriteSkippedDuplicate {
		counters.DuplicatesSkipped++
		metrics.ObserveDuplicateSkip("comment")
		return nil
	}
	counters.CommentsWritten++
	metrics.ObserveEntityWritten("comment")
	return nil
}

func (o *Orchestrator) publish(ctx context.Context, event videoEvent, log *zap.Logger) {
	if o.publisher == nil || o.cfg.Topic == "" {
		return
	}
	id, err := o.publisher.Publish(ctx, o.cfg.Topic, event)
	if err != nil {
		log.Warn("event publish failed", zap.Error(err))
		return
	}
	log.Debug("published ingest event", zap.String("message_id", id))
}

func (o *Orchestrator) finish(out ingest.Outcome) ingest.Outcome {
	metrics.ObserveIngestion(string(out.State))
	return out
}

func failed(counters ingest.Counters, reason string) ingest.Outcome {
	return ingest.Outcome{State: ingest.StateFailed, Counters: counters, Reason: reason}
}

// storageFatal reports whether the error means the store itself is broken or
// an ordering invariant was violated; neither is recoverable by moving on to
// the next video.
func storageFatal(err error) bool {
	var cv *ingest.ConstraintViolation
	return errors.Is(err, ingest.ErrStorageUnavailable) || errors.As(err, &cv)
}
