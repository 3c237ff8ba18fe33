package ratelimit

import (
	"context"
	"fmt"
	"time"

	"promopilot/internal/clients/redis"
	"promopilot/internal/observability"

	goredis "github.com/redis/go-redis/v9"
)

// Result represents the outcome of a rate limit check
type Result struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service implements sliding-window rate limiting on Redis sorted sets.
// The publisher fleet posts callbacks at volume, so the window has to be
// shared across API replicas.
type Service struct {
	redis  *redis.Client
	logger *observability.Logger
	window time.Duration
}

func NewService(redisClient *redis.Client, logger *observability.Logger) *Service {
	return &Service{
		redis:  redisClient,
		logger: logger,
		window: time.Minute,
	}
}

// Check records a hit for key and reports whether it stayed within limit
// requests per window. Redis being down fails open: a throttling outage must
// not block publication callbacks.
func (s *Service) Check(ctx context.Context, key string, limit int) (Result, error) {
	client := s.redis.GetClient()
	if client == nil {
		return Result{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	redisKey := "promotion:rl:" + key
	now := time.Now()
	windowStart := now.Add(-s.window)

	if err := client.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.UnixMilli())).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to count rate limit window: %w", err)
	}

	if int(count) >= limit {
		oldest, err := client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		retryAfter := s.window
		if err == nil && len(oldest) > 0 {
			oldestAt := time.UnixMilli(int64(oldest[0].Score))
			retryAfter = oldestAt.Add(s.window).Sub(now)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return Result{
			Allowed:      false,
			Limit:        limit,
			Remaining:    0,
			ResetAt:      now.Add(retryAfter),
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	member := fmt.Sprintf("%d-%d", now.UnixNano(), count)
	pipe := client.Pipeline()
	pipe.ZAdd(ctx, redisKey, goredis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.Expire(ctx, redisKey, s.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to record rate limit hit: %w", err)
	}

	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(count) - 1,
		ResetAt:   now.Add(s.window),
	}, nil
}
