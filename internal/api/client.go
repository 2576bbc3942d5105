package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/station-saarthi/saarthi-cli/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "saarthi-cli"
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Recorder receives request and cache observations.
// metrics.Collector implements it.
type Recorder interface {
	ObserveRequest(outcome string, d time.Duration)
	ObserveCache(hit bool)
}

// Request outcomes passed to Recorder.ObserveRequest
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeServerError = "server_error"
	OutcomeTransport   = "transport_error"
)

// Client is the API client for the train schedule service
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	recorder   Recorder
	log        zerolog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another API root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithRecorder reports request outcomes and cache hits to r
func WithRecorder(r Recorder) ClientOption {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: BaseURL,
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.ParseRequestURI(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TrainURL builds the lookup URL for query. The query is escaped as a
// single path segment so it cannot change the request target.
func (c *Client) TrainURL(query string) string {
	return c.baseURL + EndpointTrain + "/" + escapeSegment(query)
}

// escapeSegment path-escapes s. A segment made only of dots is also
// percent-encoded, since "." and ".." are removed by path normalization.
func escapeSegment(s string) string {
	if s != "" && strings.Trim(s, ".") == "" {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

// GetTrain looks up a train by number or name
func (c *Client) GetTrain(ctx context.Context, query string) (*models.TrainDetails, error) {
	body, err := c.GetTrainRaw(ctx, query)
	if err != nil {
		return nil, err
	}

	var details *models.TrainDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse train response: %w", err)
	}
	if details == nil {
		return nil, ErrEmptyResponse
	}

	return details, nil
}

// GetTrainRaw looks up a train and returns the raw JSON body
func (c *Client) GetTrainRaw(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrMissingField("query")
	}

	return c.doRequest(ctx, c.TrainURL(query))
}

// doRequest performs an HTTP GET request with optional caching
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	// Check cache first
	if c.cache != nil {
		data, ok := c.cache.Get(reqURL)
		c.observeCache(ok)
		if ok {
			c.log.Debug().Str("url", reqURL).Msg("Served from cache")
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeRequest(OutcomeTransport, start)
		c.log.Debug().Err(err).Str("url", reqURL).Msg("Request failed")
		// Check for context errors
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("Train API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(resp.StatusCode, resp.Status, extractEndpoint(reqURL))
		if errors.Is(apiErr, ErrServerError) {
			c.observeRequest(OutcomeServerError, start)
		} else {
			c.observeRequest(OutcomeNotFound, start)
		}
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observeRequest(OutcomeTransport, start)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	c.observeRequest(OutcomeOK, start)

	// Store in cache
	if c.cache != nil {
		if err := c.cache.Set(reqURL, body); err != nil {
			c.log.Debug().Err(err).Msg("Could not store response in cache")
		}
	}

	return body, nil
}

func (c *Client) observeRequest(outcome string, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveRequest(outcome, time.Since(start))
	}
}

func (c *Client) observeCache(hit bool) {
	if c.recorder != nil {
		c.recorder.ObserveCache(hit)
	}
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.EscapedPath()
}
