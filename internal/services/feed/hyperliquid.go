package feed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
	"tokendesk/internal/domain"
)

// HyperliquidFeed reports mid prices from the Hyperliquid public Info API.
// Mids come back keyed by base coin, already quoted in USD.
type HyperliquidFeed struct {
	info       *hyperliquid.Info
	currencies []string
}

// NewHyperliquidFeed creates a feed for the given currencies.
func NewHyperliquidFeed(info *hyperliquid.Info, currencies []string) *HyperliquidFeed {
	return &HyperliquidFeed{info: info, currencies: currencies}
}

// Fetch downloads all mids and keeps the configured currencies. Currencies
// Hyperliquid does not list are skipped, not errored on.
func (f *HyperliquidFeed) Fetch(ctx context.Context) ([]domain.PriceRecord, error) {
	if f.info == nil {
		return nil, errors.New("hyperliquid info client is nil")
	}

	mids, err := f.info.AllMids(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch hyperliquid mids")
	}

	now := time.Now()
	records := make([]domain.PriceRecord, 0, len(f.currencies))
	for _, currency := range f.currencies {
		mid, ok := mids[currency]
		if !ok || mid == "" {
			continue
		}
		price, err := decimal.NewFromString(mid)
		if err != nil {
			continue
		}
		records = append(records, domain.PriceRecord{
			Currency:   currency,
			Price:      price,
			ObservedAt: now,
		})
	}
	return records, nil
}
