package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/apierror"
	"github.com/pulseboard/backend/internal/logger"
)

// RateLimiter counts requests per client IP over a fixed window.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	name    string // shows up in log lines
}

type bucket struct {
	count    int
	lastSeen time.Time
}

// NewRateLimiter builds a limiter allowing rate requests per window and
// starts its background cleanup loop.
func NewRateLimiter(rate int, window time.Duration, name string) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		name:    name,
	}
	go rl.cleanup()
	return rl
}

// cleanup drops buckets idle for two windows so the map does not grow
// with every IP ever seen.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			if now.Sub(b.lastSeen) > rl.window*2 {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) isAllowed(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.lastSeen) > rl.window {
		rl.buckets[ip] = &bucket{count: 1, lastSeen: now}
		return true, 1
	}

	b.count++
	b.lastSeen = now
	return b.count <= rl.rate, b.count
}

// RateLimit is the general per-IP limit, 300 requests per minute. High
// enough that a wearable full-sync batch never trips it.
func RateLimit() gin.HandlerFunc {
	return limitWith(NewRateLimiter(300, time.Minute, "general"))
}

// RateLimitIngest is the stricter limit for the ingest endpoint, which
// does the heaviest per-request write work. 60 requests per minute.
func RateLimitIngest() gin.HandlerFunc {
	return limitWith(NewRateLimiter(60, time.Minute, "ingest"))
}

func limitWith(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP honors X-Forwarded-For behind a trusted proxy.
		ip := c.ClientIP()

		allowed, count := limiter.isAllowed(ip)
		if !allowed {
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", limiter.name),
				logger.String("client_ip", ip),
				logger.Int("request_count", count),
				logger.Int("limit", limiter.rate),
			)

			retryAfter := int(limiter.window.Seconds())
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
