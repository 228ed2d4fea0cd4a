package wallet

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

// BinanceSource reads spot account balances from Binance. Exchange
// balances carry no chain of their own, so every record is labeled with
// the configured chain name and ranked through the priority table like
// any other.
type BinanceSource struct {
	client *binance.Client
	chain  string
}

// NewBinanceSource creates a source reading the spot account of client.
func NewBinanceSource(client *binance.Client, chain string) *BinanceSource {
	return &BinanceSource{client: client, chain: chain}
}

// Balances fetches free spot balances. Zero balances are skipped here;
// the pipeline would drop them anyway.
func (s *BinanceSource) Balances(ctx context.Context) ([]domain.BalanceRecord, error) {
	account, err := s.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance account balances")
	}

	records := make([]domain.BalanceRecord, 0, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse binance balance for %s", b.Asset)
		}
		if !free.IsPositive() {
			continue
		}
		records = append(records, domain.BalanceRecord{
			Currency: b.Asset,
			Amount:   free,
			Chain:    s.chain,
		})
	}
	return records, nil
}
