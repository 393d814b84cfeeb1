// Package openweather fetches the raw daily forecast payload from the
// Sunshine weather endpoint.
package openweather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/couchcryptid/sunshine-sync/internal/observability"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Client performs a single GET against the forecast endpoint per Fetch.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	location   string
	days       int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a forecast client. timeout bounds the whole request,
// including reading the body.
func NewClient(baseURL, location string, days int, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		location:   location,
		days:       days,
		metrics:    metrics,
		logger:     logger,
	}
}

// URL returns the request address derived from the configured location.
func (c *Client) URL() string {
	params := url.Values{
		"q":     {c.location},
		"mode":  {"json"},
		"units": {"metric"},
		"cnt":   {strconv.Itoa(c.days)},
	}
	return c.baseURL + "?" + params.Encode()
}

// Fetch returns the full response body as text. Every failure wraps
// domain.ErrTransport. There are no retries.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	start := time.Now()
	defer func() {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: forecast request: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: forecast API status %d: %s", domain.ErrTransport, resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}
	if len(body) > maxBodyBytes {
		return "", fmt.Errorf("%w: response body exceeds %d bytes", domain.ErrTransport, maxBodyBytes)
	}

	c.logger.Debug("forecast fetched", "bytes", len(body), "duration", time.Since(start))
	return string(body), nil
}
