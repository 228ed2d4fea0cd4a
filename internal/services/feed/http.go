package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

const defaultHTTPTimeout = 15 * time.Second

// HTTPFeed fetches a JSON price list of the form
// [{"currency": "ETH", "date": "2024-02-01T00:00:00Z", "price": 2600}, ...].
// Entries with a missing price or an unparseable date are data-quality
// noise and are skipped, not errored on.
type HTTPFeed struct {
	url    string
	client *http.Client
}

// NewHTTPFeed creates a feed for the given endpoint.
func NewHTTPFeed(url string) *HTTPFeed {
	return &HTTPFeed{
		url:    url,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

type priceJSON struct {
	Currency string          `json:"currency"`
	Date     string          `json:"date"`
	Price    decimal.Decimal `json:"price"`
}

// Fetch downloads and decodes the price list.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]domain.PriceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build price feed request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch prices from %s", f.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("price feed %s returned status %d", f.url, resp.StatusCode)
	}

	var raw []priceJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode price feed payload")
	}

	records := make([]domain.PriceRecord, 0, len(raw))
	for _, r := range raw {
		observedAt, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			continue
		}
		records = append(records, domain.PriceRecord{
			Currency:   r.Currency,
			Price:      r.Price,
			ObservedAt: observedAt,
		})
	}
	return records, nil
}
