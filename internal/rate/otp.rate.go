package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/cache"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// Limiter throttles OTP issuance per email: a cooldown between sends, a cap
// per window, and an extended block once the cap is hit.
type Limiter struct {
	cache       *cache.Cache
	window      time.Duration
	maxInWindow int
	cooldown    time.Duration
}

func NewLimiter(cache *cache.Cache, window time.Duration, max int, cooldown time.Duration) *Limiter {
	return &Limiter{cache: cache, window: window, maxInWindow: max, cooldown: cooldown}
}

func (l *Limiter) CanRequest(ctx context.Context, email, purpose string) error {
	blockKey := fmt.Sprintf("otp:block:%s:%s", email, purpose)
	lastKey := fmt.Sprintf("otp:last:%s:%s", email, purpose)
	countKey := fmt.Sprintf("otp:count:%s:%s", email, purpose)

	// Blocked from a previous burst
	if ttl, _ := l.cache.GetTTL(ctx, "otp_rate", blockKey); ttl > 0 {
		return fmt.Errorf("%w: try again after %d seconds", xerrors.ErrTooManyOTPRequests, int(ttl.Seconds()))
	}

	// Cooldown since the last send
	if ttl, _ := l.cache.GetTTL(ctx, "otp_rate", lastKey); ttl > 0 {
		return fmt.Errorf("%w: wait %d seconds before requesting another code", xerrors.ErrTooManyOTPRequests, int(ttl.Seconds()))
	}

	cnt, err := l.cache.IncrWithExpire(ctx, "otp_rate", countKey, l.window)
	if err != nil {
		return err
	}

	if int(cnt) > l.maxInWindow {
		_ = l.cache.Set(ctx, "otp_rate", blockKey, "1", l.window*3)
		return fmt.Errorf("%w: try again after %d seconds", xerrors.ErrTooManyOTPRequests, int((l.window * 3).Seconds()))
	}

	_ = l.cache.Set(ctx, "otp_rate", lastKey, "1", l.cooldown)

	return nil
}
