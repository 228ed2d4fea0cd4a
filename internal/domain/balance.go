package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceRecord is a raw wallet balance on a specific chain.
type BalanceRecord struct {
	// Currency ticker symbol, e.g. "OSMO".
	Currency string
	// Amount held. Non-positive amounts never reach display.
	Amount decimal.Decimal
	// Chain name the balance lives on, e.g. "Osmosis".
	Chain string
}

// DisplayRow is a display-ready balance produced by the portfolio pipeline.
type DisplayRow struct {
	Currency        string          `json:"currency"`
	Chain           string          `json:"chain"`
	Amount          decimal.Decimal `json:"amount"`
	USDValue        decimal.Decimal `json:"usd_value"`
	FormattedAmount string          `json:"formatted_amount"`
	// Key uniquely identifies the row as (chain, currency).
	Key string `json:"key"`
}

// RowKey builds the unique row identifier for a chain/currency pair.
func RowKey(chain, currency string) string {
	return fmt.Sprintf("%s-%s", chain, currency)
}
