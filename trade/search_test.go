package trade

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTradeServer mimics the search and fetch endpoints and records
// every call it receives.
type fakeTradeServer struct {
	mu           sync.Mutex
	searchBody   string
	searchStatus int
	fetchStatus  int
	searchCalls  int
	fetchBatches [][]string
	fetchQueries []string

	// fetchOverride, when set, replaces the hydrated body for the
	// given zero-based fetch call.
	fetchOverride map[int]string

	srv *httptest.Server
}

func newFakeTradeServer(searchBody string) *fakeTradeServer {
	f := &fakeTradeServer{
		searchBody:    searchBody,
		searchStatus:  http.StatusOK,
		fetchStatus:   http.StatusOK,
		fetchOverride: map[int]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.searchCalls++
		status := f.searchStatus
		body := f.searchBody
		f.mu.Unlock()

		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/fetch/", func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(strings.TrimPrefix(r.URL.Path, "/fetch/"), ",")

		f.mu.Lock()
		call := len(f.fetchBatches)
		f.fetchBatches = append(f.fetchBatches, ids)
		f.fetchQueries = append(f.fetchQueries, r.URL.Query().Get("query"))
		override, hasOverride := f.fetchOverride[call]
		status := f.fetchStatus
		f.mu.Unlock()

		w.WriteHeader(status)
		if hasOverride {
			fmt.Fprint(w, override)
			return
		}
		fmt.Fprint(w, hydratedBody(ids))
	})

	f.srv = httptest.NewServer(mux)
	return f
}

func (f *fakeTradeServer) client(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(f.srv.URL + "/"), WithFetchDelay(0)}, opts...)
	return newTestClient(t, opts...)
}

func (f *fakeTradeServer) batches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.fetchBatches...)
}

// hydratedBody builds a fetch response with one item per requested ID.
func hydratedBody(ids []string) string {
	items := make([]FetchedItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, FetchedItem{
			ID: id,
			Listing: ItemListing{
				Account:      ListingAccount{Name: "seller_" + id},
				Price:        ListingPrice{Type: "~price", Amount: 1, Currency: "chaos"},
				WhisperToken: "tok-" + id,
			},
			Item: json.RawMessage(`{}`),
		})
	}
	body, _ := json.Marshal(FetchResponse{Result: items})
	return string(body)
}

func searchBody(queryID string, count int) string {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%d", i)
	}
	body, _ := json.Marshal(SearchResponse{ID: queryID, Result: ids, Total: count})
	return string(body)
}

func TestSearchAllFetchesEveryBatch(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-23", 23))
	defer f.srv.Close()

	outcome, err := f.client(t).SearchAll(context.Background(), SearchConfig{
		ItemName: "Tabula Rasa",
		ItemType: "Simple Robe",
	})
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, "q-23", outcome.QueryID)
	assert.Equal(t, 23, outcome.Total)
	assert.False(t, outcome.Aborted)
	require.Len(t, outcome.Items, 23)

	batches := f.batches()
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 10)
	assert.Len(t, batches[2], 3)

	// Server-side ordering survives pagination and accumulation.
	for i, item := range outcome.Items {
		assert.Equal(t, fmt.Sprintf("id-%d", i), item.ID)
	}

	// Every fetch correlates to the originating query identifier.
	for _, q := range f.fetchQueries {
		assert.Equal(t, "q-23", q)
	}
}

func TestSearchAllIdempotent(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-12", 12))
	defer f.srv.Close()

	client := f.client(t)
	first, err := client.SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)
	second, err := client.SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)

	assert.Equal(t, first.QueryID, second.QueryID)
	assert.Equal(t, first.Items, second.Items)
}

func TestSearchAllEmptyResultIsNotAnError(t *testing.T) {
	f := newFakeTradeServer(`{"id":"q-0","result":[],"total":0}`)
	defer f.srv.Close()

	outcome, err := f.client(t).SearchAll(context.Background(), SearchConfig{ItemName: "Mirror of Kalandra"})
	require.NoError(t, err)
	assert.Empty(t, outcome.Items)
	assert.False(t, outcome.Aborted)
	assert.Empty(t, f.batches())
}

func TestSearchAllMalformedSearchIsNoMatches(t *testing.T) {
	f := newFakeTradeServer(`{}`)
	defer f.srv.Close()

	outcome, err := f.client(t).SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)
	assert.Empty(t, outcome.Items)
	assert.Empty(t, f.batches())
}

func TestSearchAllHTTPErrorIsFatal(t *testing.T) {
	f := newFakeTradeServer(`{"error":{"code":3,"message":"rate limited"}}`)
	f.searchStatus = http.StatusTooManyRequests
	defer f.srv.Close()

	_, err := f.client(t).SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.True(t, httpErr.IsRateLimited())
	assert.Empty(t, f.batches())
}

func TestSearchAllKeepsPartialResultsOnMalformedFetch(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-25", 25))
	f.fetchOverride[1] = `{}`
	defer f.srv.Close()

	outcome, err := f.client(t).SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)

	assert.True(t, outcome.Aborted)
	assert.Equal(t, 1, outcome.FailedBatch)
	require.Len(t, outcome.Items, 10)
	for i, item := range outcome.Items {
		assert.Equal(t, fmt.Sprintf("id-%d", i), item.ID)
	}

	// The third batch is never attempted.
	assert.Len(t, f.batches(), 2)
}

func TestSearchAllReturnsFetchShapedPayloadDirectly(t *testing.T) {
	// Some callers are handed an already-hydrated payload where a
	// search response is expected; the items come back as-is.
	f := newFakeTradeServer(hydratedBody([]string{"a", "b"}))
	defer f.srv.Close()

	outcome, err := f.client(t).SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)

	assert.Empty(t, outcome.QueryID)
	require.Len(t, outcome.Items, 2)
	assert.Equal(t, "a", outcome.Items[0].ID)
	assert.Empty(t, f.batches())
}

func TestSearchAllPacesFetchCalls(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-23", 23))
	defer f.srv.Close()

	delay := 50 * time.Millisecond
	client := f.client(t, WithFetchDelay(delay))

	start := time.Now()
	outcome, err := client.SearchAll(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, outcome.Items, 23)
	// Three batches means two pacing waits; the first fetch goes out
	// immediately.
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestSearchAllCancelledBetweenBatches(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-23", 23))
	defer f.srv.Close()

	client := f.client(t, WithFetchDelay(time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	outcome, err := client.SearchAll(ctx, SearchConfig{ItemName: "Tabula Rasa"})
	require.Error(t, err)
	// The first batch completed before the deadline hit the pacer;
	// what was fetched is kept.
	require.NotNil(t, outcome)
	assert.Len(t, outcome.Items, 10)
}

func TestSearchDispatchesToSearchAll(t *testing.T) {
	f := newFakeTradeServer(searchBody("q-5", 5))
	defer f.srv.Close()

	outcome, err := f.client(t).Search(context.Background(), SearchConfig{ItemName: "Tabula Rasa"})
	require.NoError(t, err)
	assert.Len(t, outcome.Items, 5)
}
