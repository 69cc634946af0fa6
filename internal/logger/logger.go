package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base zerolog.Logger
)

type ctxKey struct{}

// Init configures the global JSON logger from the environment.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	Configure(getenv("LOG_LEVEL", "info"), strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"))
}

// Configure sets up the global logger with an explicit level and output format.
// Used by cmd once config.AppConfig has been loaded.
func Configure(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Str("service", "stockdata").Logger().Level(parseLevel(level))
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if base.GetLevel() == zerolog.NoLevel {
		Init()
	}
	return &base
}

// WithRequestID returns a context carrying a child logger tagged with the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	l := L().With().Str("request_id", id).Logger()
	return context.WithValue(ctx, ctxKey{}, &l)
}

// FromContext returns the request-scoped logger, or the global one when none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return L()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
