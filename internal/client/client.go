// Package client fetches sphere payloads from the sphere web service.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the sphere service host.
	DefaultBaseURL = "http://apollonian.cloudapp.net"

	// DefaultLevels is the recursion depth requested from the service.
	DefaultLevels = 7

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 30 * time.Second
)

// ErrFetchFailed indicates the payload could not be obtained.
// Use errors.Is() to check for it in calling code.
var ErrFetchFailed = errors.New("fetch failed")

// Client is an HTTP client for the sphere service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new sphere service client.
// If baseURL is empty, uses SPHERES_BASE_URL env var or DefaultBaseURL.
// A zero timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("SPHERES_BASE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SpheresURL returns the endpoint for a radius and level count,
// e.g. http://host/api/spheres/0.8/7.
func (c *Client) SpheresURL(radius float64, levels int) string {
	return fmt.Sprintf("%s/api/spheres/%s/%d", c.baseURL, FormatRadius(radius), levels)
}

// FormatRadius renders the radius as the shortest decimal string ("0.8").
func FormatRadius(radius float64) string {
	return strconv.FormatFloat(radius, 'f', -1, 64)
}

// FetchSpheres downloads the sphere payload. Every failure, including a
// non-200 status, wraps ErrFetchFailed.
func (c *Client) FetchSpheres(ctx context.Context, radius float64, levels int) ([]byte, error) {
	url := c.SpheresURL(radius, levels)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server error: %s - %s", ErrFetchFailed, resp.Status, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// Source binds a client to one radius and level count.
type Source struct {
	Client *Client
	Radius float64
	Levels int
}

// Fetch downloads the payload for the bound radius and levels.
func (s Source) Fetch(ctx context.Context) ([]byte, error) {
	return s.Client.FetchSpheres(ctx, s.Radius, s.Levels)
}
