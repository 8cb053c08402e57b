package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handstream/handstream/internal/api"
	"github.com/handstream/handstream/internal/config"
	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/engine"
	"github.com/handstream/handstream/internal/ingest"
	"github.com/handstream/handstream/internal/store"
	"github.com/handstream/handstream/internal/stream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize PostgreSQL
	ctx := context.Background()
	pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()
	logger.Info("connected to PostgreSQL")

	if err := pgStore.RunMigrations(ctx, store.Migrations()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Initialize Redis
	redisStore, err := store.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisStore.Close()
	logger.Info("connected to Redis")

	cache := store.NewFrameCache(redisStore.Client())

	// Hub with latest-frame replay for viewers that connect mid-stream
	hub := stream.NewHub(logger, snapshotFunc(cache, logger))
	go hub.Run()

	throttle := engine.NewThrottle(redisStore.Client(), logger)
	broadcaster := engine.NewBroadcaster(hub, cache, throttle, pgStore, cfg.BroadcastLimit, logger)

	// Buffer file ingest (the tracker's legacy handoff path)
	watcherCtx, stopWatcher := context.WithCancel(ctx)
	defer stopWatcher()
	watcher := ingest.NewBufferWatcher(cfg.BufferFile, cfg.PollInterval, broadcaster.Publish, logger)
	go watcher.Run(watcherCtx)

	// Setup router
	router := api.NewRouter(pgStore, cache, broadcaster, hub)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopWatcher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// snapshotFunc replays the cached latest frame as a tracking_update to each
// newly connected viewer.
func snapshotFunc(cache *store.FrameCache, logger *slog.Logger) stream.SnapshotFunc {
	return func() [][]byte {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		frame, err := cache.Latest(ctx)
		if err != nil {
			logger.Error("failed to load snapshot frame", "error", err)
			return nil
		}
		if frame == nil {
			return nil
		}

		payload, err := json.Marshal(frame.TrackingUpdate())
		if err != nil {
			return nil
		}
		msg, err := json.Marshal(domain.Envelope{Event: domain.EventTrackingUpdate, Data: payload})
		if err != nil {
			return nil
		}
		return [][]byte{msg}
	}
}
