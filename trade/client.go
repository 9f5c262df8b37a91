package trade

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the official trade API root.
	DefaultBaseURL = "https://www.pathofexile.com/api/trade2/"

	// defaultUserAgent mimics a browser; the service returns 403 for
	// default library user agents.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/111.0"

	// DefaultFetchDelay is the pacing between consecutive fetch calls.
	DefaultFetchDelay = 200 * time.Millisecond

	defaultTimeout          = 30 * time.Second
	defaultHandshakeTimeout = 45 * time.Second
)

// Client talks to the trade API for one league with one session.
// A Client is safe for sequential reuse across searches; concurrent live
// sessions should each own their own Client.
type Client struct {
	baseURL          string
	league           string
	sessionID        string
	userAgent        string
	fetchDelay       time.Duration
	handshakeTimeout time.Duration
	readTimeout      time.Duration
	httpClient       *http.Client
	logger           zerolog.Logger
}

// NewClient creates a trade client for the given league and POESESSID.
func NewClient(league, sessionID string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if league == "" {
		return nil, fmt.Errorf("league is required")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	options := clientOptions{
		baseURL:          DefaultBaseURL,
		userAgent:        defaultUserAgent,
		timeout:          defaultTimeout,
		fetchDelay:       DefaultFetchDelay,
		handshakeTimeout: defaultHandshakeTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if _, err := url.Parse(options.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if options.baseURL[len(options.baseURL)-1] != '/' {
		options.baseURL += "/"
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:          options.baseURL,
		league:           league,
		sessionID:        sessionID,
		userAgent:        options.userAgent,
		fetchDelay:       options.fetchDelay,
		handshakeTimeout: options.handshakeTimeout,
		readTimeout:      options.readTimeout,
		httpClient:       httpClient,
		logger:           logger,
	}, nil
}

// League returns the league this client queries.
func (c *Client) League() string {
	return c.league
}

// doRequest performs one HTTP round trip with the default trade headers.
// When raiseError is set, non-2xx responses become an *HTTPError; the
// whisper call opts out because the API answers it with JSON error
// bodies on non-2xx statuses.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body []byte, extra http.Header, raiseError bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.headers(extra)

	c.logger.Debug().
		Str("method", method).
		Str("url", rawURL).
		Msg("Sending trade API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if raiseError && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("url", rawURL).
			Msg("Trade API request failed")
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// search executes a search POST and returns the raw body for
// classification.
func (c *Client) search(ctx context.Context, req *TradeRequest) ([]byte, error) {
	body, err := encodeTradeRequest(req)
	if err != nil {
		return nil, err
	}
	return c.doRequest(ctx, http.MethodPost, c.searchURL(), body, nil, true)
}

// fetch hydrates up to one batch of result IDs against a query
// identifier. The caller guarantees ids is non-empty and within the
// per-request cap.
func (c *Client) fetch(ctx context.Context, ids []string, queryID string) (*FetchResponse, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.fetchURL(ids, queryID), nil, nil, true)
	if err != nil {
		return nil, err
	}

	classified := Classify(body)
	if classified.Kind != KindFetch {
		return nil, fmt.Errorf("%w: fetch returned %s payload", ErrMalformedResponse, classified.Kind)
	}
	return classified.Fetch, nil
}
