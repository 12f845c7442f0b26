// Package fleetapi provides a client for the fleet telemetry API.
package fleetapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 8 << 20 // 8 MiB
	userAgent      = "github.com/theirongolddev/fleetbill/1.0"
)

var (
	// ErrUnauthorized indicates the API key is missing, expired, or invalid.
	ErrUnauthorized = errors.New("fleetapi: unauthorized")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("fleetapi: rate limited")
)

// StatusError reports an unexpected non-2xx response.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fleetapi: GET %s: unexpected status %d", e.Path, e.Code)
}

// Client fetches vehicles and odometer history over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
// An empty apiKey sends no Authorization header.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("fleetapi: base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("fleetapi: invalid base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		timeout: timeout,
		http:    &http.Client{},
	}, nil
}

// FetchFleet returns every vehicle of the operator's fleet.
func (c *Client) FetchFleet(ctx context.Context) ([]model.Vehicle, error) {
	body, err := c.get(ctx, "/vehicles")
	if err != nil {
		return nil, err
	}
	return DecodeVehicles(body)
}

// FetchHistory returns the odometer snapshot of every vehicle at the given instant.
func (c *Client) FetchHistory(ctx context.Context, at time.Time) ([]model.HistoryRecord, error) {
	body, err := c.get(ctx, "/history/"+url.PathEscape(at.UTC().Format(time.RFC3339)))
	if err != nil {
		return nil, err
	}
	return DecodeHistory(body)
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("fleetapi: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fleetapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Path: path, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("fleetapi: reading response: %w", err)
	}
	return body, nil
}
