package feed

import (
	"context"
	"time"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

// BybitFeed reports spot last prices for a set of currencies against a
// quote asset via the Bybit V5 market tickers endpoint.
type BybitFeed struct {
	client     *bybit.Client
	currencies []string
	quote      string
}

// NewBybitFeed creates a feed for the given currencies quoted in quote.
func NewBybitFeed(client *bybit.Client, currencies []string, quote string) *BybitFeed {
	return &BybitFeed{client: client, currencies: currencies, quote: quote}
}

// Fetch queries one spot ticker per currency.
func (f *BybitFeed) Fetch(_ context.Context) ([]domain.PriceRecord, error) {
	now := time.Now()
	records := make([]domain.PriceRecord, 0, len(f.currencies))

	for _, currency := range f.currencies {
		if currency == f.quote {
			records = append(records, domain.PriceRecord{
				Currency:   currency,
				Price:      decimal.NewFromInt(1),
				ObservedAt: now,
			})
			continue
		}

		symbol := bybit.SymbolV5(currency + f.quote)
		result, err := f.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
			Category: "spot",
			Symbol:   &symbol,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch bybit ticker for %s", symbol)
		}
		if len(result.Result.Spot.List) == 0 {
			return nil, errors.Errorf("bybit API returned empty prices for %s", symbol)
		}

		price, err := decimal.NewFromString(result.Result.Spot.List[0].LastPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bybit price for %s", symbol)
		}

		records = append(records, domain.PriceRecord{
			Currency:   currency,
			Price:      price,
			ObservedAt: now,
		})
	}
	return records, nil
}
