package trade

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type whisperRequest struct {
	Token string `json:"token"`
}

// Whisper contacts a listing's seller through the trade site. The
// endpoint legitimately answers non-2xx with a JSON error body, so the
// HTTP status is not raised as an error; a non-JSON body is tolerated
// and reported as a structured error outcome.
func (c *Client) Whisper(ctx context.Context, listing ItemListing) (*WhisperResponse, error) {
	body, err := json.Marshal(whisperRequest{Token: listing.WhisperToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode whisper request: %w", err)
	}

	extra := http.Header{}
	extra.Set("X-Requested-With", "XMLHttpRequest")

	respBody, err := c.doRequest(ctx, http.MethodPost, c.whisperURL(), body, extra, false)
	if err != nil {
		return nil, err
	}

	var res WhisperResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		c.logger.Warn().Msg("Whisper response was not valid JSON")
		return &WhisperResponse{Error: &WhisperError{Message: "invalid JSON response"}}, nil
	}

	if res.Error != nil {
		c.logger.Warn().
			Int("code", res.Error.Code).
			Str("message", res.Error.Message).
			Msg("Whisper error")
	}
	return &res, nil
}
