package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per username in Redis.
// Key format: login_fail:<username>, expiring after the window so a quiet
// account unlocks itself.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis
// client. Non-positive maxFailures or window fall back to defaults.
func NewLoginThrottle(client *redis.Client, maxFailures int64, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures, window: window}
}

// TooMany reports whether username has exhausted its failure budget.
func (t *LoginThrottle) TooMany(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// NoteFailure increments the counter and refreshes the window.
func (t *LoginThrottle) NoteFailure(ctx context.Context, username string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(username))
	pipe.Expire(ctx, t.key(username), t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Clear resets the counter after a successful login.
func (t *LoginThrottle) Clear(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("throttle clear: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(username string) string {
	return "login_fail:" + username
}
