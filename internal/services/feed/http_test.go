package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHTTPFeed_Fetch(t *testing.T) {
	payload := `[
		{"currency": "ETH", "date": "2024-01-01T00:00:00Z", "price": 2500},
		{"currency": "ETH", "date": "2024-02-01T00:00:00Z", "price": 2600},
		{"currency": "USDC", "date": "2024-02-01T00:00:00Z", "price": 1},
		{"currency": "BROKEN", "date": "not-a-date", "price": 5},
		{"currency": "FREE", "date": "2024-02-01T00:00:00Z"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	records, err := NewHTTPFeed(srv.URL).Fetch(context.Background())
	require.NoError(t, err)

	// BROKEN is dropped for its date; FREE survives decoding with a zero
	// price and gets dropped later by the catalog
	require.Len(t, records, 4)
	require.Equal(t, "ETH", records[0].Currency)
	require.True(t, records[1].Price.Equal(decimal.NewFromInt(2600)))
	require.Equal(t, "FREE", records[3].Currency)
	require.True(t, records[3].Price.IsZero())
}

func TestHTTPFeed_FetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPFeed(srv.URL).Fetch(context.Background())
	require.Error(t, err)
}

func TestHTTPFeed_FetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPFeed(srv.URL).Fetch(context.Background())
	require.Error(t, err)
}

func TestStaticFeed_FetchCopies(t *testing.T) {
	feed := NewStaticFeed(nil)
	records, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}
