package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mak8427/poetrade/trade"
)

func listing(id string, amount float64, currency, seller string, online bool) trade.FetchedItem {
	item := trade.FetchedItem{
		ID: id,
		Listing: trade.ItemListing{
			Account: trade.ListingAccount{Name: seller},
			Price:   trade.ListingPrice{Amount: amount, Currency: currency},
		},
	}
	if online {
		item.Listing.Account.Online = &trade.ListingAccountOnline{League: "Standard"}
	}
	return item
}

func TestCompileRejectsBadExpressions(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: ""},
		{name: "whitespace only", expression: "   "},
		{name: "unbalanced", expression: "Price < "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			assert.Error(t, err)
		})
	}
}

func TestMatchPriceAndCurrency(t *testing.T) {
	f, err := Compile(`Price < 10 and Currency == "chaos"`)
	require.NoError(t, err)

	cheap := listing("a", 5, "chaos", "seller_a", true)
	pricey := listing("b", 50, "chaos", "seller_b", true)
	divine := listing("c", 5, "divine", "seller_c", true)

	ok, err := f.Match(cheap)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(pricey)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.Match(divine)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApplyPreservesOrder(t *testing.T) {
	f, err := Compile(`Online`)
	require.NoError(t, err)

	items := []trade.FetchedItem{
		listing("a", 1, "chaos", "s1", true),
		listing("b", 2, "chaos", "s2", false),
		listing("c", 3, "chaos", "s3", true),
	}

	matched, err := f.Apply(items)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "a", matched[0].ID)
	assert.Equal(t, "c", matched[1].ID)
}

func TestMatchSeller(t *testing.T) {
	f, err := Compile(`Seller startsWith "trusted_"`)
	require.NoError(t, err)

	ok, err := f.Match(listing("a", 1, "chaos", "trusted_alice", true))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(listing("b", 1, "chaos", "bob", true))
	require.NoError(t, err)
	assert.False(t, ok)
}
