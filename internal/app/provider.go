package app

import (
	"fmt"
	"net/url"

	"github.com/guttosm/stockdata/config"
	"github.com/guttosm/stockdata/internal/provider"
	"github.com/guttosm/stockdata/internal/provider/yahoo"
)

// InitProvider builds the market data client from the provider settings.
//
// Behavior:
//   - Validates that the chart and summary base URLs are absolute http(s) URLs.
//   - Applies timeout, User-Agent and auto-adjust settings.
//   - Performs no network I/O; the quoteSummary session is acquired lazily on first use.
//
// Example usage:
//
//	p, err := app.InitProvider(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ invalid provider config: %v", err)
//	}
func InitProvider(cfg config.Config) (provider.Provider, error) {
	pc := cfg.Provider
	for name, raw := range map[string]string{"PROVIDER_CHART_URL": pc.ChartURL, "PROVIDER_SUMMARY_URL": pc.SummaryURL} {
		if err := checkBaseURL(raw); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if pc.CookieURL != "" {
		if err := checkBaseURL(pc.CookieURL); err != nil {
			return nil, fmt.Errorf("invalid PROVIDER_COOKIE_URL: %w", err)
		}
	}

	opts := []yahoo.ClientOption{yahoo.WithAutoAdjust(pc.AutoAdjust)}
	if pc.Timeout > 0 {
		opts = append(opts, yahoo.WithTimeout(pc.Timeout))
	}
	if pc.UserAgent != "" {
		opts = append(opts, yahoo.WithUserAgent(pc.UserAgent))
	}

	return yahoo.NewClient(pc.ChartURL, pc.SummaryURL, pc.CookieURL, opts...), nil
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}

// providerOpener is an indirection used by InitializeApp; overridden in tests to avoid real network calls.
var providerOpener = InitProvider
