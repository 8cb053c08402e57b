package engine

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestThrottle(t *testing.T) (*Throttle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewThrottle(client, logger), mr
}

func TestThrottle_AllowsWithinLimit(t *testing.T) {
	th, _ := setupTestThrottle(t)
	ctx := context.Background()

	// Limit of 5 per second — first 5 should all pass
	for i := 0; i < 5; i++ {
		if !th.Allow(ctx, "tracking_update", 5) {
			t.Errorf("event %d should be forwarded (limit=5)", i+1)
		}
	}
}

func TestThrottle_SkipsOverLimit(t *testing.T) {
	th, _ := setupTestThrottle(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		th.Allow(ctx, "tracking_update", 3)
	}

	if th.Allow(ctx, "tracking_update", 3) {
		t.Error("event should be skipped when over limit")
	}
}

func TestThrottle_ChannelsAreIndependent(t *testing.T) {
	th, _ := setupTestThrottle(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		th.Allow(ctx, "tracking_update", 2)
	}

	if th.Allow(ctx, "tracking_update", 2) {
		t.Error("tracking_update should be exhausted")
	}
	if !th.Allow(ctx, "hand_update", 2) {
		t.Error("hand_update should still have budget")
	}
}

func TestThrottle_ZeroLimit_ForwardsAll(t *testing.T) {
	th, _ := setupTestThrottle(t)
	ctx := context.Background()

	// Zero limit means no throttling
	for i := 0; i < 100; i++ {
		if !th.Allow(ctx, "tracking_update", 0) {
			t.Errorf("event %d should be forwarded with limit=0 (unlimited)", i+1)
		}
	}
}
