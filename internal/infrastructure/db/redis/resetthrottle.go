package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetCooldown = 5 * time.Minute

// ResetThrottle limits how often a password-reset email is sent to the same
// address. Key format: pwreset:<email>
type ResetThrottle struct {
	client *redis.Client
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
func NewResetThrottle(client *redis.Client) *ResetThrottle {
	return &ResetThrottle{client: client}
}

// Allow reports whether a reset email may be sent to email, and when it may,
// starts the cooldown. SET NX makes the check-and-mark atomic so two
// concurrent requests cannot both pass.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", resetCooldown).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle: %w", err)
	}
	return ok, nil
}

func (t *ResetThrottle) key(email string) string {
	return "pwreset:" + email
}
