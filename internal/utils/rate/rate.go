package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limiter is a fixed-window counter backed by Redis, used to throttle login
// and OTP attempts per identity+address key. Redis failures fail open so the
// cache cannot lock everyone out.
type Limiter struct {
	client  *redis.Client
	logger  *zap.Logger
	enabled bool
}

func NewLimiter(client *redis.Client, logger *zap.Logger, enabled bool) *Limiter {
	return &Limiter{client: client, logger: logger.Named("rate_limiter"), enabled: enabled}
}

// Allow reports whether another attempt under key fits inside limit per
// period.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, period time.Duration) (bool, error) {
	if !l.enabled {
		return true, nil
	}

	redisKey := fmt.Sprintf("rate:%s", key)

	count, err := l.client.Get(ctx, redisKey).Int()
	if err != nil && err != redis.Nil {
		l.logger.Error("failed to read rate counter", zap.Error(err), zap.String("key", key))
		return true, err
	}

	if err == redis.Nil {
		if err := l.client.Set(ctx, redisKey, 1, period).Err(); err != nil {
			l.logger.Error("failed to create rate counter", zap.Error(err), zap.String("key", key))
			return true, err
		}
		return true, nil
	}

	if count >= limit {
		l.logger.Warn("rate limit exceeded", zap.String("key", key), zap.Int("count", count), zap.Int("limit", limit))
		return false, nil
	}

	if _, err := l.client.Incr(ctx, redisKey).Result(); err != nil {
		l.logger.Error("failed to increment rate counter", zap.Error(err), zap.String("key", key))
		return true, err
	}
	return true, nil
}
