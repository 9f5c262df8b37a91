package trade

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// SearchOutcome carries everything one search produced. Items holds
// the hydrated listings accumulated so far; when Aborted is set a fetch
// batch came back malformed and Items is the partial result up to (but
// not including) FailedBatch.
type SearchOutcome struct {
	QueryID     string
	Total       int
	Items       []FetchedItem
	Aborted     bool
	FailedBatch int
}

// Search runs one search. In live mode it blocks on LiveSearch until
// the session ends and returns a nil outcome; otherwise it returns the
// accumulated results of SearchAll.
func (c *Client) Search(ctx context.Context, cfg SearchConfig) (*SearchOutcome, error) {
	if cfg.Live {
		return nil, c.LiveSearch(ctx, cfg)
	}
	return c.SearchAll(ctx, cfg)
}

// SearchAll executes the search, then pages through every matched ID
// in order, fetching one batch at a time with the configured pacing
// delay between calls. An error from the initial search is fatal. An
// empty or malformed search result is a normal no-match outcome. A
// malformed fetch response mid-pagination aborts the loop but keeps
// everything fetched so far.
func (c *Client) SearchAll(ctx context.Context, cfg SearchConfig) (*SearchOutcome, error) {
	body, err := c.search(ctx, BuildTradeRequest(cfg))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	classified := Classify(body)
	switch classified.Kind {
	case KindMalformed:
		c.logger.Warn().Msg("Search returned no result field")
		return &SearchOutcome{}, nil
	case KindFetch:
		// The caller was handed an already-hydrated payload; report
		// the items as-is instead of paginating.
		return &SearchOutcome{
			Total: len(classified.Fetch.Result),
			Items: classified.Fetch.Result,
		}, nil
	}

	res := classified.Search
	outcome := &SearchOutcome{QueryID: res.ID, Total: len(res.Result)}
	if len(res.Result) == 0 {
		c.logger.Info().Str("name", cfg.ItemName).Msg("No results for the given search")
		return outcome, nil
	}

	c.logger.Info().
		Str("query_id", res.ID).
		Int("matches", len(res.Result)).
		Msg("Search matched, fetching results")

	// Burst 1 lets the first fetch go out immediately; every batch
	// after waits out the pacing delay.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if c.fetchDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(c.fetchDelay), 1)
	}

	for i, batch := range paginate(res.Result, FetchPageSize) {
		if err := limiter.Wait(ctx); err != nil {
			return outcome, fmt.Errorf("fetch pacing interrupted: %w", err)
		}

		fetched, err := c.fetch(ctx, batch, res.ID)
		if err != nil {
			if isMalformed(err) {
				c.logger.Warn().
					Int("batch", i).
					Msg("Fetch returned malformed response, keeping partial results")
				outcome.Aborted = true
				outcome.FailedBatch = i
				return outcome, nil
			}
			return outcome, fmt.Errorf("fetch batch %d failed: %w", i, err)
		}

		outcome.Items = append(outcome.Items, fetched.Result...)
		c.logger.Debug().
			Int("batch", i).
			Int("fetched", len(outcome.Items)).
			Msg("Fetched result batch")
	}

	return outcome, nil
}
