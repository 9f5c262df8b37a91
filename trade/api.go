package trade

import "context"

// API defines the caller-facing surface of the trade client.
type API interface {
	// Search runs a search; live mode blocks until the session ends.
	Search(ctx context.Context, cfg SearchConfig) (*SearchOutcome, error)

	// SearchAll fetches every result of a search, batch by batch.
	SearchAll(ctx context.Context, cfg SearchConfig) (*SearchOutcome, error)

	// LiveSearch holds a persistent stream and pushes hydrated items
	// to the configured handler until cancelled or disconnected.
	LiveSearch(ctx context.Context, cfg SearchConfig) error

	// Whisper contacts the seller of a listing.
	Whisper(ctx context.Context, listing ItemListing) (*WhisperResponse, error)
}

var _ API = (*Client)(nil)
