// Package ingest feeds tracking frames into the broadcaster. Frames arrive
// either over the REST API or from a JSON buffer file the tracker process
// writes in place of a real transport.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/handstream/handstream/internal/domain"
)

// PublishFunc hands one frame to the broadcaster.
type PublishFunc func(ctx context.Context, frame domain.Frame)

// BufferWatcher polls a JSON buffer file and publishes its frame whenever the
// contents change. While the file is missing or corrupt and no frame has ever
// been read, the zeroed default frame is published once so viewers have
// something to show.
type BufferWatcher struct {
	path     string
	interval time.Duration
	publish  PublishFunc
	logger   *slog.Logger

	last []byte // canonical form of the last published frame
}

func NewBufferWatcher(path string, interval time.Duration, publish PublishFunc, logger *slog.Logger) *BufferWatcher {
	return &BufferWatcher{
		path:     path,
		interval: interval,
		publish:  publish,
		logger:   logger,
	}
}

// Run polls until the context is cancelled.
func (w *BufferWatcher) Run(ctx context.Context) {
	w.logger.Info("buffer watcher started", "path", w.path, "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("buffer watcher stopping")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll reads the buffer once and publishes on change.
func (w *BufferWatcher) poll(ctx context.Context) {
	frame, ok := w.readBuffer()
	if !ok {
		// Unreadable buffer: fall back to the default frame only until a
		// real frame has been seen, then keep the last published state.
		if w.last != nil {
			return
		}
		frame = domain.DefaultFrame()
	}

	canonical, err := json.Marshal(frame)
	if err != nil {
		w.logger.Error("failed to canonicalize frame", "error", err)
		return
	}

	if bytes.Equal(canonical, w.last) {
		return
	}
	w.last = canonical

	w.publish(ctx, frame)
}

func (w *BufferWatcher) readBuffer() (domain.Frame, bool) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return domain.Frame{}, false
	}

	var frame domain.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		w.logger.Debug("buffer file not parseable", "error", err)
		return domain.Frame{}, false
	}
	return frame, true
}
