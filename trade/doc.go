// Package trade implements a client for the Path of Exile trade API.
//
// The API exposes three cooperating surfaces: a search endpoint that
// turns a query document into a query identifier plus an ordered list
// of result IDs, a fetch endpoint that hydrates up to ten of those IDs
// per request, and a websocket live endpoint that pushes newly matched
// IDs for an existing query. This package covers all three, plus the
// whisper endpoint used to contact a seller.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := trade.NewClient("Standard", poesessid, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome, err := client.SearchAll(ctx, trade.SearchConfig{
//		ItemName: "Tabula Rasa",
//		ItemType: "Simple Robe",
//	})
//
// SearchAll pages through every matched ID in server order, pacing
// consecutive fetch calls (200ms by default) to stay under the
// service's rate limits. A malformed fetch response aborts the loop
// but keeps the items accumulated so far.
//
// Live searches hold one websocket per query and invoke the supplied
// ItemHandler synchronously per notification:
//
//	err = client.LiveSearch(ctx, trade.SearchConfig{
//		ItemName: "Tabula Rasa",
//		ItemType: "Simple Robe",
//		Live:     true,
//		OnItems: trade.ItemHandlerFunc(func(res *trade.FetchResponse) {
//			// handle res.Result
//		}),
//	})
//
// A dropped connection ends the session with ErrStreamClosed; there is
// no automatic reconnect. Run independent live searches on independent
// Client instances.
//
// The session credential is passed as an opaque POESESSID cookie and
// never logged. Every request carries a browser-like user agent, since
// the service rejects default library identifiers.
package trade
