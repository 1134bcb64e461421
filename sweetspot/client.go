// Package sweetspot is a client for the Sweetspot middleware API that backs
// Golfstar's booking frontend. It resolves the course catalog and aggregates
// available tee times across courses, tolerating the response-shape quirks
// the API is known for.
package sweetspot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Config holds the client settings, read from the environment (a .env file
// works too when the caller loads it first).
type Config struct {
	BaseURL   string        `envconfig:"SWEETSPOT_BASE_URL" default:"https://middleware.sweetspot.io/api"`
	ClubID    string        `envconfig:"GOLFSTAR_CLUB_ID" default:"275"`
	AuthToken string        `envconfig:"GOLFSTAR_TOKEN"`
	Timeout   time.Duration `envconfig:"SWEETSPOT_TIMEOUT" default:"30s"`
	Deadline  time.Duration `envconfig:"GOLFSTAR_DEADLINE" default:"5m"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, errors.Wrap(err, "loading sweetspot config")
}

// Client talks to the Sweetspot middleware API. Acquire one per command and
// release it with Close when done.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a Client with the given config. Diagnostics go to logger;
// pass nil to use the process default.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Close releases connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// The middleware rejects requests that don't look like they come from the
// booking frontend, hence the origin and user-agent headers.
func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-application-origin", "WB")
	req.Header.Set("accept", "*/*")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("origin", "https://book.sweetspot.io")
	req.Header.Set("referer", "https://book.sweetspot.io/")
	if c.cfg.AuthToken != "" {
		req.Header.Set("authorization", "Bearer "+c.cfg.AuthToken)
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: path, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthorizationError{Endpoint: path}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status: %s", truncate(body, 200)),
		}
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
