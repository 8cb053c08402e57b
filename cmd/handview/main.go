// handview is the single-hand display client: it subscribes to hand_update
// events and renders the hand's position, chirality, gesture and timestamp
// with a marker mapped into the configured viewport.
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

	cal := mapper.HandViewCalibration()
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

	v := view.NewHandView(cal, vp)
	renderer := view.NewTerminalRenderer(os.Stdout)
	renderer.RenderHand(v)

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
			if env.Event != domain.EventHandUpdate {
				continue
			}

			var u domain.HandUpdate
			if err := json.Unmarshal(env.Data, &u); err != nil {
				logger.Warn("discarding malformed hand_update", "error", err)
				continue
			}

			v.Apply(u)
			renderer.RenderHand(v)
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
