package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/stockdata/internal/middleware"
)

// RouterOptions tunes the cross-cutting behaviour of the router.
type RouterOptions struct {
	// RequestTimeout bounds each request, provider calls included. Zero disables it.
	RequestTimeout time.Duration
	// RateLimitPerMinute caps requests per client IP on the documentation routes. Zero disables it.
	RateLimitPerMinute int
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) behind the RateLimiter.
//   - Configures GET /stock_data. It is never rate limited: every answer there is a 200 JSON document.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	// ─── Swagger ──────────────────────────────────
	docs := router.Group("/swagger", middleware.RateLimiter(opts.RateLimitPerMinute))
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Stock data ───────────────────────────────
	router.GET("/stock_data", handler.GetStockData)

	return router
}
