package external

import (
	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter refilled at perMinute calls per minute that
// starts full with burst calls. The client only uses Allow, so callers over
// the quota are rejected immediately.
func NewLimiter(perMinute, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}
