package trade

import "encoding/json"

// OnlineStatus controls which sellers a search matches.
type OnlineStatus string

const (
	// StatusOnline matches sellers online anywhere.
	StatusOnline OnlineStatus = "online"
	// StatusOnlineLeague matches sellers online in the searched league.
	StatusOnlineLeague OnlineStatus = "onlineleague"
	// StatusAny matches all sellers regardless of online state.
	StatusAny OnlineStatus = "any"
)

// SortPrice is the price sort direction for search results.
type SortPrice string

// SortPriceAsc sorts results from cheapest to most expensive. The trade
// API currently accepts no other direction.
const SortPriceAsc SortPrice = "asc"

// StatFilterValue bounds a single stat filter.
type StatFilterValue struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// StatFilter matches one stat by its trade-site identifier,
// e.g. "pseudo.pseudo_adds_physical_damage".
type StatFilter struct {
	ID       string          `json:"id"`
	Disabled bool            `json:"disabled"`
	Value    StatFilterValue `json:"value"`
}

// StatGroup combines stat filters under a group type ("and", "if",
// "count" or "weight").
type StatGroup struct {
	Type     string       `json:"type"`
	Filters  []StatFilter `json:"filters"`
	Disabled bool         `json:"disabled"`
}

// LinksFilter constrains socket links and colours.
type LinksFilter struct {
	R   *int `json:"r,omitempty"`
	G   *int `json:"g,omitempty"`
	B   *int `json:"b,omitempty"`
	W   *int `json:"w,omitempty"`
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// SocketFilters groups socket-related constraints.
type SocketFilters struct {
	Links *LinksFilter `json:"links,omitempty"`
}

// AccountFilter restricts results to a single seller account.
type AccountFilter struct {
	Input string `json:"input"`
}

// TradeFilters groups trade-related constraints.
type TradeFilters struct {
	Account AccountFilter `json:"account"`
}

// SocketFilterGroup is the togglable wrapper the API expects around
// socket filters.
type SocketFilterGroup struct {
	Disabled bool          `json:"disabled"`
	Filters  SocketFilters `json:"filters"`
}

// TradeFilterGroup is the togglable wrapper around trade filters.
type TradeFilterGroup struct {
	Disabled bool         `json:"disabled"`
	Filters  TradeFilters `json:"filters"`
}

// QueryFilters is the nested filter document of a search query.
type QueryFilters struct {
	SocketFilters *SocketFilterGroup `json:"socket_filters,omitempty"`
	TradeFilters  *TradeFilterGroup  `json:"trade_filters,omitempty"`
}

// queryStatus wraps the online-status option as the API expects it.
type queryStatus struct {
	Option OnlineStatus `json:"option"`
}

type tradeQuery struct {
	Status  queryStatus  `json:"status"`
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Stats   []StatGroup  `json:"stats"`
	Filters QueryFilters `json:"filters"`
}

type tradeSort struct {
	Price SortPrice `json:"price"`
}

// TradeRequest is the wire-shaped body of a search POST.
type TradeRequest struct {
	Query tradeQuery `json:"query"`
	Sort  tradeSort  `json:"sort"`
}

// SearchResponse is the reply to a search POST: a query identifier plus
// the ordered result IDs it matched.
type SearchResponse struct {
	ID         string   `json:"id"`
	Complexity int      `json:"complexity"`
	Result     []string `json:"result"`
	Total      int      `json:"total"`
}

// ListingStash locates an item inside the seller's stash.
type ListingStash struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ListingAccountOnline is present when the seller is online.
type ListingAccountOnline struct {
	League string `json:"league"`
}

// ListingAccount identifies the seller.
type ListingAccount struct {
	Name              string                `json:"name"`
	Online            *ListingAccountOnline `json:"online"`
	Language          string                `json:"language"`
	Realm             string                `json:"realm"`
	LastCharacterName string                `json:"lastCharacterName"`
}

// ListingPrice is the asking price of a listing.
type ListingPrice struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ItemListing holds the sale details of one fetched result.
type ItemListing struct {
	Method       string         `json:"method"`
	Indexed      string         `json:"indexed"`
	Stash        ListingStash   `json:"stash"`
	Account      ListingAccount `json:"account"`
	Price        ListingPrice   `json:"price"`
	Whisper      string         `json:"whisper"`
	WhisperToken string         `json:"whisper_token"`
}

// FetchedItem is one hydrated search result. The item body itself is
// kept opaque; callers that need it decode the raw payload themselves.
type FetchedItem struct {
	ID      string          `json:"id"`
	Listing ItemListing     `json:"listing"`
	Item    json.RawMessage `json:"item"`
}

// FetchResponse is the reply to a fetch GET.
type FetchResponse struct {
	Result []FetchedItem `json:"result"`
}

// WhisperError is the structured error body of a failed whisper.
type WhisperError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WhisperResponse is the outcome of a whisper POST. Exactly one of
// Success or Error is meaningful.
type WhisperResponse struct {
	Success bool          `json:"success"`
	Error   *WhisperError `json:"error,omitempty"`
}

// ItemHandler receives hydrated items pushed by a live search. It is
// invoked synchronously, one notification at a time, in arrival order.
type ItemHandler interface {
	HandleItems(res *FetchResponse)
}

// ItemHandlerFunc adapts a plain function to ItemHandler.
type ItemHandlerFunc func(res *FetchResponse)

// HandleItems implements ItemHandler.
func (f ItemHandlerFunc) HandleItems(res *FetchResponse) { f(res) }

// SearchConfig describes one search. Zero values for Status and Sort
// fall back to StatusOnline and SortPriceAsc.
type SearchConfig struct {
	ItemName string
	ItemType string
	Status   OnlineStatus
	Sort     SortPrice
	Stats    []StatGroup
	Filters  QueryFilters

	// Live switches Search into live mode; OnItems receives each
	// notification's hydrated items.
	Live    bool
	OnItems ItemHandler
}
