//go:build integration

package feed

import (
	"context"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/require"
)

// TestBinanceFeed_Fetch_Integration calls the real Binance public API.
// To run: go test -tags=integration -v ./...
func TestBinanceFeed_Fetch_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := binance.NewClient("", "")
	feed := NewBinanceFeed(client, []string{"BTC", "ETH", "USDT"}, "USDT")

	records, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		require.True(t, r.Price.IsPositive(), "expected price > 0 for %s, got %s", r.Currency, r.Price.String())
		t.Logf("%s: %s", r.Currency, r.Price.String())
	}
}
