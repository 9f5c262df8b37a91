package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// liveFrame is one inbound stream message. Only the "new" field
// matters; every other shape is ignored.
type liveFrame struct {
	New []string `json:"new"`
}

// LiveSearch runs a persistent live search. It first executes the
// search to obtain a query identifier (failure there is fatal, no
// connection is opened), then holds a websocket on the live endpoint
// and, per inbound notification, fetches the newly matched IDs and
// hands the hydrated result to cfg.OnItems. Frames are processed one
// at a time in arrival order; a bad frame or a failed fetch is logged
// and skipped, never fatal.
//
// LiveSearch blocks until ctx is cancelled (returns ctx.Err()), the
// idle read timeout fires (ErrStreamIdle), or the remote end drops the
// connection (ErrStreamClosed wrapping the transport error). There is
// no automatic reconnect; a fresh call owns a fresh session.
func (c *Client) LiveSearch(ctx context.Context, cfg SearchConfig) error {
	if cfg.OnItems == nil {
		return ErrLiveHandlerMissing
	}

	body, err := c.search(ctx, BuildTradeRequest(cfg))
	if err != nil {
		return fmt.Errorf("live search failed: %w", err)
	}
	classified := Classify(body)
	if classified.Kind != KindSearch {
		return fmt.Errorf("%w: live search returned %s payload", ErrMalformedResponse, classified.Kind)
	}
	queryID := classified.Search.ID

	dialer := websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.liveURL(queryID), c.headers(nil))
	if err != nil {
		return fmt.Errorf("failed to open live stream: %w", err)
	}
	defer conn.Close()

	c.logger.Info().
		Str("query_id", queryID).
		Str("name", cfg.ItemName).
		Msg("Starting livesearch")

	// Closing the connection is the only way to unblock ReadMessage
	// when the caller cancels.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-watchDone:
		}
	}()

	for {
		if c.readTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
				return fmt.Errorf("failed to set read deadline: %w", err)
			}
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return fmt.Errorf("%w: %s", ErrStreamIdle, err)
			}
			return fmt.Errorf("%w: %s", ErrStreamClosed, err)
		}

		c.handleLiveFrame(ctx, queryID, msg, cfg.OnItems)
	}
}

// handleLiveFrame processes one inbound frame. Malformed frames and
// failed fetches are logged and dropped so a flaky upstream cannot
// tear down the session.
func (c *Client) handleLiveFrame(ctx context.Context, queryID string, msg []byte, handler ItemHandler) {
	c.logger.Debug().Str("frame", string(msg)).Msg("Received live frame")

	var frame liveFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		c.logger.Warn().Err(err).Msg("Received invalid JSON frame, ignoring")
		return
	}
	if len(frame.New) == 0 {
		return
	}

	fetched, err := c.fetch(ctx, frame.New, queryID)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Strs("ids", frame.New).
			Msg("Fetch for live notification failed, continuing")
		return
	}

	handler.HandleItems(fetched)
}
