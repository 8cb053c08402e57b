// trackview is the two-hand display client: it subscribes to tracking_update
// events and renders both palms, the combined gesture, and one marker per
// hand mapped into the configured viewport.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/handstream/handstream/internal/config"
	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/mapper"
	"github.com/handstream/handstream/internal/stream"
	"github.com/handstream/handstream/internal/view"
)

func main() {
	// Renders to stdout, so diagnostics go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.LoadViewer()

	cal := mapper.TrackViewCalibration()
	applyCalibrationOverrides(&cal, cfg)
	vp := mapper.Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := stream.Dial(ctx, cfg.ServerURL, logger)
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	v := view.NewTrackView(cal, vp)
	renderer := view.NewTerminalRenderer(os.Stdout)
	renderer.RenderTracking(v)

	events := client.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-events:
			if !ok {
				// Connection dropped: keep the last render until interrupted
				events = nil
				continue
			}
			if env.Event != domain.EventTrackingUpdate {
				continue
			}

			var u domain.TrackingUpdate
			if err := json.Unmarshal(env.Data, &u); err != nil {
				logger.Warn("discarding malformed tracking_update", "error", err)
				continue
			}

			v.Apply(u)
			renderer.RenderTracking(v)
		}
	}
}

func applyCalibrationOverrides(cal *mapper.Calibration, cfg *config.ViewerConfig) {
	if cfg.Window != nil {
		cal.Window = *cfg.Window
	}
	if cfg.OffsetX != nil {
		cal.OffsetX = *cfg.OffsetX
	}
	if cfg.OffsetY != nil {
		cal.OffsetY = *cfg.OffsetY
	}
}
