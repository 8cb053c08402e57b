package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/handstream/handstream/internal/domain"
)

const latestFrameKey = "frame:latest"

// Frames expire if the tracker stops feeding us; viewers then fall back to
// their waiting placeholders instead of replaying a stale hand.
const latestFrameTTL = 10 * time.Second

// FrameCache keeps the most recent tracking frame in Redis so late-joining
// viewers and the REST API can read current state without waiting for the
// next broadcast.
type FrameCache struct {
	client *redis.Client
}

func NewFrameCache(client *redis.Client) *FrameCache {
	return &FrameCache{client: client}
}

// SetLatest overwrites the cached frame.
func (c *FrameCache) SetLatest(ctx context.Context, frame domain.Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshaling frame: %w", err)
	}

	if err := c.client.Set(ctx, latestFrameKey, data, latestFrameTTL).Err(); err != nil {
		return fmt.Errorf("caching frame: %w", err)
	}
	return nil
}

// Latest returns the cached frame, or nil when none is cached.
func (c *FrameCache) Latest(ctx context.Context) (*domain.Frame, error) {
	data, err := c.client.Get(ctx, latestFrameKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached frame: %w", err)
	}

	var frame domain.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("unmarshaling cached frame: %w", err)
	}
	return &frame, nil
}
