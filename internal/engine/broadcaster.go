package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/handstream/handstream/internal/domain"
	"github.com/handstream/handstream/internal/store"
	"github.com/handstream/handstream/internal/stream"
)

// GestureRecorder persists complex-gesture transitions. Satisfied by the
// Postgres store.
type GestureRecorder interface {
	RecordGestureEvent(ctx context.Context, gesture string, occurredAtNs int64) (*domain.GestureEvent, error)
}

// Broadcaster fans one ingested frame out to every viewer: it derives the
// per-page wire events, throttles them per channel, refreshes the latest-frame
// cache, and logs complex-gesture transitions.
type Broadcaster struct {
	hub      *stream.Hub
	cache    *store.FrameCache
	throttle *Throttle
	gestures GestureRecorder
	limit    int
	logger   *slog.Logger

	mu          sync.Mutex
	lastComplex string
}

func NewBroadcaster(hub *stream.Hub, cache *store.FrameCache, throttle *Throttle, gestures GestureRecorder, limit int, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		cache:    cache,
		throttle: throttle,
		gestures: gestures,
		limit:    limit,
		logger:   logger,
	}
}

// Publish processes one frame. Frames can arrive from both the buffer
// watcher and the ingest endpoint; the lock serializes them so events reach
// viewers in publish order.
func (b *Broadcaster) Publish(ctx context.Context, frame domain.Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.cache.SetLatest(ctx, frame); err != nil {
		b.logger.Error("failed to cache frame", "error", err)
	}

	b.recordGestureTransition(ctx, frame.ComplexGesture)

	if b.throttle.Allow(ctx, domain.EventTrackingUpdate, b.limit) {
		b.hub.Broadcast(domain.EventTrackingUpdate, frame.TrackingUpdate())
	}

	if updates := frame.HandUpdates(); len(updates) > 0 && b.throttle.Allow(ctx, domain.EventHandUpdate, b.limit) {
		for _, u := range updates {
			b.hub.Broadcast(domain.EventHandUpdate, u)
		}
	}
}

// recordGestureTransition writes a gesture event whenever the combined
// gesture changes to a new non-idle classification.
func (b *Broadcaster) recordGestureTransition(ctx context.Context, cg *domain.ComplexGesture) {
	if cg == nil || cg.Gesture == b.lastComplex {
		return
	}
	b.lastComplex = cg.Gesture

	if cg.Gesture == "" || cg.Gesture == "idle" || cg.Gesture == "N/A" {
		return
	}

	var occurredAt int64
	if cg.GestureTimestamp != nil {
		occurredAt = *cg.GestureTimestamp
	}

	if _, err := b.gestures.RecordGestureEvent(ctx, cg.Gesture, occurredAt); err != nil {
		b.logger.Error("failed to record gesture event", "gesture", cg.Gesture, "error", err)
		return
	}

	b.logger.Info("complex gesture", "gesture", cg.Gesture)
}
