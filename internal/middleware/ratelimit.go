// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/casinoremedial/backend/internal/core"
)

// RateLimiter throttles by client IP using Redis, falling back to an
// in-process limiter when Redis is unreachable. Limiter errors fail open.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	limit    redis_rate.Limit
	fallback *localLimiter
	logger   *slog.Logger
}

func NewRateLimiter(
	client *redis.Client,
	requests int,
	window time.Duration,
	burst int,
	logger *slog.Logger,
) *RateLimiter {
	perSecond := float64(requests) / window.Seconds()

	return &RateLimiter{
		limiter: redis_rate.NewLimiter(client),
		limit: redis_rate.Limit{
			Rate:   requests,
			Period: window,
			Burst:  burst,
		},
		fallback: newLocalLimiter(rate.Limit(perSecond), burst),
		logger:   logger,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ratelimit:" + clientIP(r)

		res, err := rl.limiter.Allow(r.Context(), key, rl.limit)
		if err != nil {
			if !rl.fallback.allow(key) {
				tooManyRequests(w, 0)
				return
			}
			rl.logger.Warn("redis rate limiter unavailable, using local fallback",
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.Rate))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed == 0 {
			tooManyRequests(w, res.RetryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func tooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After",
			strconv.Itoa(int(retryAfter.Seconds())+1))
	}
	core.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
		"success": false,
		"message": "too many requests, slow down",
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// localLimiter keeps per-key token buckets for the Redis-down path. Entries
// are pruned when the map grows past a soft cap.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

const localLimiterCap = 10_000

func newLocalLimiter(limit rate.Limit, burst int) *localLimiter {
	return &localLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.limiters) > localLimiterCap {
		l.limiters = make(map[string]*rate.Limiter)
	}

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}

	return limiter.Allow()
}
