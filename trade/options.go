package trade

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL          string
	userAgent        string
	timeout          time.Duration
	fetchDelay       time.Duration
	handshakeTimeout time.Duration
	readTimeout      time.Duration
	httpClient       *http.Client
}

// WithBaseURL overrides the trade API base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithUserAgent sets the user agent sent on every request. The service
// rejects default library identifiers, so this must look like a browser.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithFetchDelay sets the pacing delay between consecutive fetch calls
// of one search. Zero disables pacing; tests rely on that.
func WithFetchDelay(delay time.Duration) Option {
	return func(o *clientOptions) {
		if delay >= 0 {
			o.fetchDelay = delay
		}
	}
}

// WithHandshakeTimeout bounds the live stream's websocket handshake.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.handshakeTimeout = timeout
	}
}

// WithReadTimeout sets an idle timeout on live stream reads. When no
// frame arrives within the window the session ends with ErrStreamIdle.
// Zero means no idle timeout.
func WithReadTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.readTimeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}
