// Package engine turns ingested tracking frames into the wire events the
// viewers consume.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle caps how many events per second each stream channel may broadcast,
// using a sliding window in Redis. The upstream tracker samples faster than
// any viewer can usefully redraw, so excess frames are simply not forwarded.
// A Lua script atomically cleans expired entries, checks the count, and adds
// new entries.
type Throttle struct {
	redisClient *redis.Client
	logger      *slog.Logger
	script      *redis.Script
}

// Lua script for atomic sliding window limiting.
// 1. Remove entries older than the window
// 2. Count remaining entries
// 3. If under the limit, add a new entry and return 1 (forward)
// 4. If at/over the limit, return 0 (skip)
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

-- Remove entries outside the sliding window
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

-- Count current entries in the window
local count = redis.call('ZCARD', key)

if count < limit then
    -- Under the limit: record this event and forward
    redis.call('ZADD', key, now, member)
    -- Set TTL so the key auto-expires after the window
    redis.call('EXPIRE', key, window / 1000 + 1)
    return 1
else
    -- At the limit: skip
    return 0
end
`)

func NewThrottle(redisClient *redis.Client, logger *slog.Logger) *Throttle {
	return &Throttle{
		redisClient: redisClient,
		logger:      logger,
		script:      slidingWindowScript,
	}
}

func throttleKey(channel string) string {
	return fmt.Sprintf("throttle:%s", channel)
}

// Allow reports whether another event may be broadcast on this channel within
// the current one-second window. limit <= 0 disables throttling.
func (t *Throttle) Allow(ctx context.Context, channel string, limit int) bool {
	if limit <= 0 {
		return true
	}

	key := throttleKey(channel)
	now := time.Now().UnixMilli()
	window := int64(1000) // 1 second window in milliseconds
	member := fmt.Sprintf("%d:%d", now, time.Now().UnixNano()%10000) // unique member

	result, err := t.script.Run(ctx, t.redisClient, []string{key},
		now, window, limit, member,
	).Int64()
	if err != nil {
		t.logger.Error("throttle script failed", "error", err, "channel", channel)
		return true // Fail open — forward the event if Redis fails
	}

	if result == 0 {
		t.logger.Debug("event throttled", "channel", channel, "limit", limit)
		return false
	}

	return true
}
