package yahoo

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/guttosm/stockdata/internal/provider"
)

// sessionCrumb returns the cached crumb, obtaining one first if needed.
//
// Yahoo binds the crumb to the cookie set by cookieURL, so both requests go
// through the same cookie jar. The lock is held across the network calls so
// concurrent requests wait for a single acquisition.
func (c *Client) sessionCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	if c.cookieURL != "" {
		// fc.yahoo.com answers 404 but still sets the session cookie
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, nil)
		if err != nil {
			return "", &provider.UpstreamError{Stage: provider.StageSession, Err: err}
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", &provider.UpstreamError{Stage: provider.StageSession, Err: err}
		}
		_ = resp.Body.Close()
	}

	body, err := c.get(ctx, c.summaryURL, "/v1/test/getcrumb", nil)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return "", &provider.UpstreamError{Stage: provider.StageSession, StatusCode: se.StatusCode, Err: err}
		}
		return "", &provider.UpstreamError{Stage: provider.StageSession, Err: err}
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", &provider.UpstreamError{Stage: provider.StageSession, Err: errors.New("empty or malformed crumb")}
	}

	c.crumb = crumb
	return crumb, nil
}

// resetCrumb drops a crumb the provider rejected.
func (c *Client) resetCrumb(rejected string) {
	c.mu.Lock()
	if c.crumb == rejected {
		c.crumb = ""
	}
	c.mu.Unlock()
}
