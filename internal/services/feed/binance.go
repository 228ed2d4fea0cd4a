package feed

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

// BinanceFeed reports last prices for a set of currencies against a quote
// asset (e.g. USDT) via the Binance public ticker endpoint.
type BinanceFeed struct {
	client     *binance.Client
	currencies []string
	quote      string
}

// NewBinanceFeed creates a feed for the given currencies quoted in quote.
func NewBinanceFeed(client *binance.Client, currencies []string, quote string) *BinanceFeed {
	return &BinanceFeed{client: client, currencies: currencies, quote: quote}
}

// Fetch queries one ticker per currency. The quote asset itself, when
// listed, is reported at price 1.
func (f *BinanceFeed) Fetch(ctx context.Context) ([]domain.PriceRecord, error) {
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

		prices, err := f.client.NewListPricesService().Symbol(currency + f.quote).Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch binance price for %s%s", currency, f.quote)
		}
		if len(prices) == 0 {
			return nil, errors.Errorf("binance API returned empty prices for %s%s", currency, f.quote)
		}

		price, err := decimal.NewFromString(prices[0].Price)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse binance price for %s%s", currency, f.quote)
		}

		records = append(records, domain.PriceRecord{
			Currency:   currency,
			Price:      price,
			ObservedAt: now,
		})
	}
	return records, nil
}
