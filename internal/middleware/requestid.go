package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/stockdata/internal/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID is a Gin middleware that tags each request with an identifier.
//
// Behavior:
//   - Reuses the caller's X-Request-ID header when present, otherwise generates a UUID (v4).
//   - Stores it in the Gin context under the key "request_id".
//   - Attaches a request-scoped logger to the request context (see logger.FromContext),
//     so the service and provider client log with the same id.
//   - Adds it to the response headers as "X-Request-ID".
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
