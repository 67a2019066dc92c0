// Package omdb provides a client for the OMDb (Open Movie Database) API.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"
	// MaxTrending caps the flattened result of SearchManyByTitle.
	MaxTrending = 8

	// DefaultRequestsPerSecond is the outbound request rate when none is configured.
	DefaultRequestsPerSecond = 10.0
	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 10 * time.Second

	requestLimitMessage = "Request limit reached!"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OMDb API client. It never retries and never caches.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	limitReached atomic.Bool
}

// NewClient creates a new OMDb API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		rateLimiter: ratelimit.New("OMDb", DefaultRequestsPerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OMDb API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = base
		}
	}
}

// WithRateLimiter replaces the default limiter. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// RequestsAllowed reports whether OMDb has not yet reported an exhausted quota during this run.
func (c *Client) RequestsAllowed() bool {
	return !c.limitReached.Load()
}

func (c *Client) markLimitReached() {
	if c.limitReached.CompareAndSwap(false, true) {
		slog.Warn("OMDb API request limit reached; skipping further OMDb requests for this run")
	}
}

func (c *Client) endpoint(params url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	query := u.Query()
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	query.Set("apikey", c.apiKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// getJSON performs one GET and decodes and validates the body into target.
// Only transport, rate limit and shape failures are reported here; the
// Response/Error envelope is interpreted by the caller.
func (c *Client) getJSON(ctx context.Context, params url.Values, target any) error {
	if !c.RequestsAllowed() {
		return errors.NewRateLimitError("OMDb API request limit reached")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		slog.Debug("Rate limiter wait aborted", "limiter", c.rateLimiter.Name(), "error", err)
		return errors.NewTransportError("rate limit wait failed", err)
	}

	endpoint, err := c.endpoint(params)
	if err != nil {
		return errors.NewTransportError("failed to build request URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewTransportError("failed to create request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError("failed to fetch data", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewMalformedError("failed to decode response", err)
	}

	if err := validate.Struct(target); err != nil {
		return errors.NewMalformedError("unexpected response shape", err)
	}

	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil {
		slog.Warn("Failed to read error response body", "error", err)
	}

	var envelope struct {
		Response string `json:"Response"`
		Error    string `json:"Error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		if envelope.Error == requestLimitMessage {
			c.markLimitReached()
			return errors.NewRateLimitError("OMDb API request limit reached")
		}
		slog.Warn("OMDb API error", "status", resp.StatusCode, "error", envelope.Error)
		return errors.NewTransportError(
			fmt.Sprintf("unexpected status %d", resp.StatusCode),
			fmt.Errorf("%s", envelope.Error),
		)
	}

	return errors.NewTransportError(
		fmt.Sprintf("unexpected status %d", resp.StatusCode),
		fmt.Errorf("%s", strings.TrimSpace(string(body))),
	)
}

// serviceError converts a Response:"False" envelope into a typed error.
func (c *Client) serviceError(message string) error {
	if message == requestLimitMessage {
		c.markLimitReached()
		return errors.NewRateLimitError("OMDb API request limit reached")
	}
	return errors.NewNotFoundError(message)
}
