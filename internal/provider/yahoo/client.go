// Package yahoo implements provider.Provider on top of the Yahoo Finance
// chart and quoteSummary endpoints.
package yahoo

import (
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/guttosm/stockdata/internal/provider"
)

const defaultTimeout = 15 * time.Second

// Client provides access to the Yahoo Finance JSON endpoints.
//
// It is safe for concurrent use. The only state shared between requests is the
// session crumb required by quoteSummary, guarded by mu.
type Client struct {
	chartURL   string
	summaryURL string
	cookieURL  string
	userAgent  string
	autoAdjust bool
	httpClient *http.Client

	mu    sync.Mutex
	crumb string
}

var _ provider.Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new client. chartURL serves /v8/finance/chart, summaryURL
// serves /v10/finance/quoteSummary and /v1/test/getcrumb. cookieURL may be empty,
// in which case no session cookie is requested before asking for a crumb.
func NewClient(chartURL, summaryURL, cookieURL string, opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil) // only fails on a non-nil options argument
	c := &Client{
		chartURL:   chartURL,
		summaryURL: summaryURL,
		cookieURL:  cookieURL,
		autoAdjust: true,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAutoAdjust controls whether OHLC prices are scaled by the adjusted close ratio.
// When disabled, raw prices are returned with the adjusted close alongside.
func WithAutoAdjust(on bool) ClientOption {
	return func(c *Client) {
		c.autoAdjust = on
	}
}

// WithHTTPClient sets a custom HTTP client. A cookie jar is attached when missing,
// since the quoteSummary crumb is bound to the session cookie.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar, _ = cookiejar.New(nil)
		}
		c.httpClient = hc
	}
}

// CloseIdleConnections releases idle upstream connections. Used on shutdown.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
