package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fitpulse/fitpulse-api/pkg/common"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting.
type RateLimitConfig struct {
	// Unique identifier for this rate limit bucket. Routes sharing a
	// BucketName share the same limits.
	BucketName string

	// Maximum number of requests allowed per key in the time window.
	Limit int

	// Time window for the limit (e.g., 1 minute).
	Window time.Duration

	// PaceRPS, when positive, additionally smooths admitted traffic to
	// the given requests per second with a leaky bucket. Callers over
	// the pace are delayed, not rejected.
	PaceRPS int

	// KeyExtractor identifies the client being limited. The default
	// uses the authenticated user id when present and falls back to the
	// forwarded source address.
	KeyExtractor func(*common.Request) string
}

// RateLimiter decides whether a request identified by key is admitted
// under the given limit and window. It also reports the remaining
// allowance and the time until the window resets.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) (bool, int, time.Duration)
}

// WindowRateLimiter implements RateLimiter with a fixed counting window
// per key, optionally pacing admitted requests through Uber's leaky
// bucket when constructed with a positive rps.
type WindowRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*windowBucket
	pacer   ratelimit.Limiter
}

type windowBucket struct {
	count       int
	windowStart time.Time
}

// NewWindowRateLimiter creates a rate limiter. paceRPS <= 0 disables pacing.
func NewWindowRateLimiter(paceRPS int) *WindowRateLimiter {
	l := &WindowRateLimiter{buckets: make(map[string]*windowBucket)}
	if paceRPS > 0 {
		l.pacer = ratelimit.New(paceRPS)
	}
	return l
}

// Allow admits or rejects one request for key.
func (l *WindowRateLimiter) Allow(key string, limit int, window time.Duration) (bool, int, time.Duration) {
	if window <= 0 {
		window = time.Second
	}
	if limit <= 0 {
		limit = 1
	}

	now := time.Now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) > window {
		b = &windowBucket{windowStart: now}
		l.buckets[key] = b
	}
	b.count++
	count := b.count
	reset := window - now.Sub(b.windowStart)
	l.mu.Unlock()

	if count > limit {
		return false, 0, reset
	}

	// Pace admitted traffic only; rejected requests return immediately.
	if l.pacer != nil {
		l.pacer.Take()
	}

	return true, limit - count, reset
}

// defaultRateLimitKey identifies the caller by authenticated user id,
// falling back to the source address forwarded by the gateway.
func defaultRateLimitKey(req *common.Request) string {
	if req.Auth.Authenticated() {
		return req.Auth.UserID
	}
	if ip := req.Header("X-Forwarded-For"); ip != "" {
		return ip
	}
	return "anonymous"
}

// RateLimit creates a middleware that enforces the configured limits,
// short-circuiting with a 429 and a Retry-After header when a caller
// exceeds its bucket.
func RateLimit(config *RateLimitConfig, limiter RateLimiter, logger *zap.Logger) Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		if config == nil {
			return next(req)
		}

		extract := config.KeyExtractor
		if extract == nil {
			extract = defaultRateLimitKey
		}
		key := config.BucketName + ":" + extract(req)

		allowed, remaining, reset := limiter.Allow(key, config.Limit, config.Window)

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.String("key", key),
				zap.Int("limit", config.Limit),
			)
			resp := common.NewErrorResponse(http.StatusTooManyRequests, "Too Many Requests")
			resp.SetHeader("Retry-After", strconv.FormatInt(int64(reset.Seconds()), 10))
			resp.SetHeader("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			resp.SetHeader("X-RateLimit-Remaining", "0")
			return resp, nil
		}

		resp, err := next(req)
		if resp != nil {
			resp.SetHeader("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			resp.SetHeader("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		return resp, err
	}
}
