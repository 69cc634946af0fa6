package main

//
//  @title           stockdata API
//  @version         1.0
//  @description     Aggregates price history, issuer profile, dividends, analyst recommendations and income statements for a ticker.
//  @termsOfService  https://github.com/guttosm/stockdata
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockdata
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stock
//  @tag.description Aggregated stock data
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/stockdata/config"
	_ "github.com/guttosm/stockdata/docs" // swagger docs
	"github.com/guttosm/stockdata/internal/app"
	"github.com/guttosm/stockdata/internal/domain/models"
	"github.com/guttosm/stockdata/internal/export"
	"github.com/guttosm/stockdata/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - requestTimeout (time.Duration): Per-request deadline; the write timeout leaves room above it.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, requestTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., idle upstream connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// splitTickers parses a comma separated ticker list.
func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// runExport writes one JSON document per ticker and stops on the first file system error.
// Cancelled by SIGINT/SIGTERM.
func runExport(ctx context.Context, cfg config.Config, opts export.Options) error {
	p, err := app.InitProvider(cfg)
	if err != nil {
		return err
	}
	svc := app.NewStockDataService(cfg, p)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := export.Run(ctx, svc, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	logger.L().Info().Int("written", len(results)).Int("error_bodies", failed).Str("out", opts.OutDir).Msg("export completed")
	return nil
}

// main is the entry point of the stockdata application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API exposing GET /stock_data.
//   - export: Writes the /stock_data document of each ticker in --tickers to --out.
//
// Flags:
//   - --mode:     Execution mode ("api" or "export"). Default: "api".
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --tickers:  Comma separated tickers for export mode.
//   - --start:    Export start date (YYYY-MM-DD). Defaults to EXPORT_DEFAULT_START_DATE.
//   - --end:      Export end date (YYYY-MM-DD, exclusive). Defaults to today (UTC).
//   - --out:      Export output directory. Defaults to EXPORT_OUTPUT_DIR.
//   - --parallel: Tickers exported concurrently (0=auto, max 8).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()
	cfg := config.AppConfig

	// Initialize JSON logger
	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or export")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	tickers := flag.String("tickers", "", "Comma separated tickers for export mode")
	start := flag.String("start", cfg.Export.DefaultStartDate, "Export start date (YYYY-MM-DD)")
	end := flag.String("end", time.Now().UTC().Format(models.DateLayout), "Export end date, exclusive (YYYY-MM-DD)")
	out := flag.String("out", cfg.Export.OutputDir, "Export output directory")
	parallel := flag.Int("parallel", 0, "How many tickers to export concurrently (0=auto, max 8)")
	flag.Parse()

	switch *mode {
	case "export":
		logger.L().Info().Msg("running export")

		opts := export.Options{
			Tickers:   splitTickers(*tickers),
			StartDate: *start,
			EndDate:   *end,
			OutDir:    *out,
			Parallel:  *parallel,
		}
		if err := runExport(ctx, cfg, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("export failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, cfg.Server.RequestTimeout)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
