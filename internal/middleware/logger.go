package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdata/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, query, status code,
// request latency, and request ID (if available).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/stock_data status=200 latency_ms=412
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		logger.L().Info().
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window counter per client IP.
// NOTE: state is per process; multi-instance deployments need a shared store.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{clients: make(map[string]*client), limit: limit, window: window}
}

// allow records a hit for ip and reports whether it is within the limit.
func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// sweep drops clients whose window has expired.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter is an in-memory middleware that limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to perMinute requests per client IP per minute. A value <= 0 disables limiting.
//   - If the limit is exceeded, returns HTTP 429 Too Many Requests with a dto.ErrorResponse.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60))
func RateLimiter(perMinute int) gin.HandlerFunc {
	return rateLimit(newRateLimiter(perMinute, time.Minute))
}

func rateLimit(rl *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}
		if !rl.allow(c.ClientIP(), time.Now()) {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
