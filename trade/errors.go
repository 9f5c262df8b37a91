package trade

import (
	"errors"
	"fmt"
)

// Common errors returned by the trade client.
var (
	// ErrMalformedResponse is returned when a response body lacks the
	// fields the API contract promises.
	ErrMalformedResponse = errors.New("malformed trade API response")

	// ErrStreamClosed is returned when the live stream is closed by the
	// remote end. The session is over; reconnecting is the caller's call.
	ErrStreamClosed = errors.New("live stream closed")

	// ErrStreamIdle is returned when no frame arrives within the
	// configured read timeout. Callers may treat this as retryable.
	ErrStreamIdle = errors.New("live stream idle timeout")

	// ErrLiveHandlerMissing is returned when a live search is started
	// without an item handler.
	ErrLiveHandlerMissing = errors.New("live search requires an item handler")
)

// isMalformed reports whether err stems from a malformed response.
func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// HTTPError represents a non-success status from the trade API.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("trade API error: status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited checks whether the service throttled the request.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsForbidden checks for a rejected session or user agent.
func (e *HTTPError) IsForbidden() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
