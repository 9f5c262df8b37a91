package trade

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// BuildTradeRequest maps a search configuration onto the wire shape the
// search endpoint expects. It is a pure mapping: empty names and types
// pass through untouched, the server is authoritative on validation.
func BuildTradeRequest(cfg SearchConfig) *TradeRequest {
	status := cfg.Status
	if status == "" {
		status = StatusOnline
	}
	sort := cfg.Sort
	if sort == "" {
		sort = SortPriceAsc
	}
	stats := cfg.Stats
	if stats == nil {
		stats = []StatGroup{{Type: "and", Filters: []StatFilter{}}}
	}

	return &TradeRequest{
		Query: tradeQuery{
			Status:  queryStatus{Option: status},
			Name:    cfg.ItemName,
			Type:    cfg.ItemType,
			Stats:   stats,
			Filters: cfg.Filters,
		},
		Sort: tradeSort{Price: sort},
	}
}

func encodeTradeRequest(req *TradeRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trade request: %w", err)
	}
	return body, nil
}

// searchURL builds the search endpoint for the client's league.
func (c *Client) searchURL() string {
	return c.baseURL + "search/" + c.league
}

// fetchURL builds the fetch endpoint for a batch of result IDs,
// correlated to the query identifier that produced them. The caller
// guarantees ids is non-empty and at most one page.
func (c *Client) fetchURL(ids []string, queryID string) string {
	params := url.Values{}
	params.Set("query", queryID)
	return c.baseURL + "fetch/" + strings.Join(ids, ",") + "?" + params.Encode()
}

// liveURL builds the websocket endpoint for a live search. The HTTP
// scheme is swapped for its websocket counterpart on the same host.
func (c *Client) liveURL(queryID string) string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "live/" + c.league + "/" + queryID
}

// whisperURL builds the whisper endpoint.
func (c *Client) whisperURL() string {
	return c.baseURL + "whisper"
}

// headers returns a fresh header set for one request: the client
// defaults merged with per-call extras, session cookie attached last.
// A new map is built every call so no request can leak headers into
// the next.
func (c *Client) headers(extra http.Header) http.Header {
	h := http.Header{}
	h.Set("User-Agent", c.userAgent)
	h.Set("Accept", "*/*")
	h.Set("Content-Type", "application/json")
	for key, values := range extra {
		h.Del(key)
		for _, v := range values {
			h.Add(key, v)
		}
	}
	h.Set("Cookie", "POESESSID="+c.sessionID)
	return h
}
