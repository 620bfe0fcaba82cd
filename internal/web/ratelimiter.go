package web

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Default request budget for the monitoring endpoints. Dashboards poll
// aggressively when auto refresh is on, so the burst is generous.
const (
	defaultRatePerSecond = 25
	defaultBurst         = 50
)

type rateLimiter interface {
	Allow() bool
}

// tokenBucket wraps x/time's limiter behind the rateLimiter interface so
// tests can substitute deterministic implementations.
type tokenBucket struct {
	limiter *rate.Limiter
}

func newTokenBucket(ratePerSecond float64, burst int) *tokenBucket {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &tokenBucket{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

func (b *tokenBucket) Allow() bool {
	if b == nil || b.limiter == nil {
		return true
	}
	return b.limiter.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
