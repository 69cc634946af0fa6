package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdata/config"
	"github.com/guttosm/stockdata/internal/api"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the market data provider using InitProvider().
//   - Initializes the service layer (aggregation pipeline).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to release idle upstream connections.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// indirection for unit testing
	p, err := providerOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize provider: %w", err)
	}

	svc := NewStockDataService(cfg, p)

	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(p.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		if c, ok := p.(interface{ CloseIdleConnections() }); ok {
			c.CloseIdleConnections()
		}
	}

	return router, cleanup, nil
}
