package trade

import "encoding/json"

// ResponseKind tags the shape of a decoded trade API body.
type ResponseKind int

const (
	// KindMalformed marks a body missing the fields the API promises.
	KindMalformed ResponseKind = iota
	// KindSearch marks a search response: query identifier plus
	// ordered result IDs.
	KindSearch
	// KindFetch marks a fetch response: fully hydrated listings.
	KindFetch
)

// String returns the string representation of a ResponseKind.
func (k ResponseKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindFetch:
		return "fetch"
	default:
		return "malformed"
	}
}

// Classified is the outcome of classifying one response body. Exactly
// one of Search or Fetch is set, matching Kind.
type Classified struct {
	Kind   ResponseKind
	Search *SearchResponse
	Fetch  *FetchResponse
}

// Classify decides what shape a trade API body has. The rule, in order:
// no "result" field at all means malformed; "result" plus a query
// identifier means a search response; "result" alone means an
// already-hydrated fetch payload. Callers sometimes hand the client a
// pre-fetched body instead of a raw search response, so the last case
// is reported honestly rather than treated as an error.
func Classify(body []byte) Classified {
	var probe struct {
		ID     *string          `json:"id"`
		Result *json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Result == nil {
		return Classified{Kind: KindMalformed}
	}

	if probe.ID != nil {
		var res SearchResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return Classified{Kind: KindMalformed}
		}
		return Classified{Kind: KindSearch, Search: &res}
	}

	var res FetchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return Classified{Kind: KindMalformed}
	}
	return Classified{Kind: KindFetch, Fetch: &res}
}
