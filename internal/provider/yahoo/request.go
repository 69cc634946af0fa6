package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/guttosm/stockdata/internal/logger"
)

// statusError is a non-2xx reply from Yahoo.
type statusError struct {
	StatusCode int
	Body       []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("yahoo http %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// get performs a GET request and returns the body of a 2xx reply.
// Non-2xx replies are returned as *statusError together with the body.
func (c *Client) get(ctx context.Context, base, path string, query url.Values) ([]byte, error) {
	fullURL := base + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.FromContext(ctx).Debug().Str("url", base+path).Msg("provider request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, &statusError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
