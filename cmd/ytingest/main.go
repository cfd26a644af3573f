// Package main wires together the ingestion service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcsclient "cloud.google.com/go/storage"
	"go.uber.org/zap"

	gpubsub "cloud.google.com/go/pubsub"

	"github.com/grigmv/ytingest/internal/api"
	gcsarchive "github.com/grigmv/ytingest/internal/archive/gcs"
	localarchive "github.com/grigmv/ytingest/internal/archive/local"
	"github.com/grigmv/ytingest/internal/clock/system"
	"github.com/grigmv/ytingest/internal/config"
	"github.com/grigmv/ytingest/internal/dislikes"
	"github.com/grigmv/ytingest/internal/hash/sha256"
	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/logging"
	"github.com/grigmv/ytingest/internal/metrics"
	"github.com/grigmv/ytingest/internal/normalize"
	"github.com/grigmv/ytingest/internal/pipeline"
	pubsubpublisher "github.com/grigmv/ytingest/internal/publisher/pubsub"
	"github.com/grigmv/ytingest/internal/storage/postgres"
	"github.com/grigmv/ytingest/internal/transcript"
	"github.com/grigmv/ytingest/internal/youtube"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		logger.Fatal("archive init failed", zap.Error(err))
	}

	hasher := sha256.New()
	clock := system.New()
	retry := ingest.NewRetryPolicy(cfg.HTTP.MaxRetries+1, cfg.BackoffInitial(), cfg.BackoffMax())

	ytClient := youtube.New(youtube.Config{
		APIKey:         cfg.YouTube.APIKey,
		BaseURL:        cfg.YouTube.BaseURL,
		Timeout:        cfg.RequestTimeout(),
		SearchPageSize: cfg.YouTube.SearchPageSize,
	}, retry, archive, hasher, logger.Named("youtube"))
	source := normalize.NewSource(ytClient)

	store, err := postgres.NewStore(ctx, postgres.Config{
		DSN:             cfg.DB.DSN,
		MaxConns:        int32(cfg.DB.MaxConns),
		MinConns:        int32(cfg.DB.MinConns),
		MaxConnLifetime: time.Duration(cfg.DB.MaxConnLifetime) * time.Second,
	})
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	var votes ingest.VoteSource
	if cfg.Dislikes.Enabled {
		votes = dislikes.New(dislikes.Config{BaseURL: cfg.Dislikes.BaseURL, Timeout: cfg.RequestTimeout()})
	}
	var transcripts ingest.TranscriptSource
	if cfg.Transcript.Enabled {
		transcripts = transcript.New(transcript.Config{BaseURL: cfg.Transcript.BaseURL, Timeout: cfg.RequestTimeout()})
	}

	var publisher ingest.Publisher
	if cfg.PubSub.TopicName != "" {
		psClient, err := gpubsub.NewClient(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			logger.Fatal("pubsub init failed", zap.Error(err))
		}
		defer psClient.Close()
		publisher = pubsubpublisher.New(psClient)
	}

	quota := ingest.NewQuotaTracker(cfg.Quota.DailyLimit, clock)

	orch := pipeline.New(
		source,
		store,
		votes,
		transcripts,
		publisher,
		quota,
		pipeline.Config{Topic: cfg.PubSub.TopicName},
		logger.Named("pipeline"),
	)

	apiServer := api.NewServer(orch, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

// buildArchive selects the raw payload archive backend. A nil archive
// disables payload snapshots.
func buildArchive(ctx context.Context, cfg config.Config) (ingest.BlobStore, error) {
	switch cfg.Archive.Backend {
	case "", "none":
		return nil, nil
	case "local":
		return localarchive.New(localarchive.Config{BaseDir: cfg.Archive.BaseDir})
	case "gcs":
		client, err := gcsclient.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		return gcsarchive.New(client, gcsarchive.Config{Bucket: cfg.Archive.GCSBucket})
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Archive.Backend)
	}
}
