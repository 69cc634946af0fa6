package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings and the upstream market data provider.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=30s
//	PROVIDER_CHART_URL=https://query2.finance.yahoo.com
//	PROVIDER_TIMEOUT=15s
//	RESPONSE_INCLUDE_INCOME=true
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Provider ProviderConfig // Upstream market data provider settings
	Response ResponseConfig // Shape of the /stock_data document
	Export   ExportConfig   // Batch export defaults
	Log      LogConfig      // Logger settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout     time.Duration // Deadline applied to every request context
	RateLimitPerMinute int           // Requests allowed per client IP per minute on /swagger
}

// ProviderConfig defines how the upstream market data provider is reached.
//
// Fields:
//   - ChartURL: base URL of the chart endpoint (historical bars and dividend events).
//   - SummaryURL: base URL of the quote summary endpoint (profile, recommendations, statements).
//   - CookieURL: URL visited to obtain the session cookie required before asking for a crumb.
//   - Timeout: per-call HTTP timeout.
//   - UserAgent: User-Agent header sent upstream.
//   - AutoAdjust: scale OHLC by the adjusted close ratio instead of emitting "Adj Close".
type ProviderConfig struct {
	ChartURL   string
	SummaryURL string
	CookieURL  string
	Timeout    time.Duration
	UserAgent  string
	AutoAdjust bool
}

// ResponseConfig toggles optional parts of the aggregated document.
type ResponseConfig struct {
	IncludeIncomeStatements bool
	ParallelFetch           bool
}

// ExportConfig holds defaults for the batch export mode.
type ExportConfig struct {
	DefaultStartDate string
	OutputDir        string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("PROVIDER_CHART_URL", "https://query2.finance.yahoo.com")
	viper.SetDefault("PROVIDER_SUMMARY_URL", "https://query2.finance.yahoo.com")
	viper.SetDefault("PROVIDER_COOKIE_URL", "https://fc.yahoo.com")
	viper.SetDefault("PROVIDER_TIMEOUT", "15s")
	viper.SetDefault("PROVIDER_USER_AGENT", defaultUserAgent)
	viper.SetDefault("PROVIDER_AUTO_ADJUST", true)

	viper.SetDefault("RESPONSE_INCLUDE_INCOME", true)
	viper.SetDefault("PARALLEL_FETCH", true)

	viper.SetDefault("EXPORT_DEFAULT_START_DATE", "2000-01-01")
	viper.SetDefault("EXPORT_OUTPUT_DIR", "./data/output")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Provider: ProviderConfig{
			ChartURL:   viper.GetString("PROVIDER_CHART_URL"),
			SummaryURL: viper.GetString("PROVIDER_SUMMARY_URL"),
			CookieURL:  viper.GetString("PROVIDER_COOKIE_URL"),
			Timeout:    viper.GetDuration("PROVIDER_TIMEOUT"),
			UserAgent:  viper.GetString("PROVIDER_USER_AGENT"),
			AutoAdjust: viper.GetBool("PROVIDER_AUTO_ADJUST"),
		},
		Response: ResponseConfig{
			IncludeIncomeStatements: viper.GetBool("RESPONSE_INCLUDE_INCOME"),
			ParallelFetch:           viper.GetBool("PARALLEL_FETCH"),
		},
		Export: ExportConfig{
			DefaultStartDate: viper.GetString("EXPORT_DEFAULT_START_DATE"),
			OutputDir:        viper.GetString("EXPORT_OUTPUT_DIR"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Provider.ChartURL == "" {
		missing = append(missing, "PROVIDER_CHART_URL")
	}
	if cfg.Provider.SummaryURL == "" {
		missing = append(missing, "PROVIDER_SUMMARY_URL")
	}
	if cfg.Provider.Timeout <= 0 {
		missing = append(missing, "PROVIDER_TIMEOUT")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}

	return missing
}
