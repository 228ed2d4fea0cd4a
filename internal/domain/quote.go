package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Side marks which amount of a conversion the user edited last.
type Side string

const (
	// SideFrom means the "from" amount was edited and "to" must be derived.
	SideFrom Side = "from"
	// SideTo means the "to" amount was edited and "from" must be derived.
	SideTo Side = "to"
)

// ConversionQuote is a computed pair of amounts plus the implied exchange
// rate between two currencies. Amounts keep full precision; rounding happens
// only in the Formatted* accessors.
type ConversionQuote struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	FromAmount   decimal.Decimal `json:"from_amount"`
	ToAmount     decimal.Decimal `json:"to_amount"`
	// Rate is price(from)/price(to).
	Rate decimal.Decimal `json:"rate"`
}

// FormattedFrom renders the from-amount with fixed fractional precision.
func (q *ConversionQuote) FormattedFrom(precision int32) string {
	return q.FromAmount.StringFixed(precision)
}

// FormattedTo renders the to-amount with fixed fractional precision.
func (q *ConversionQuote) FormattedTo(precision int32) string {
	return q.ToAmount.StringFixed(precision)
}

// String returns a human-readable representation.
func (q *ConversionQuote) String() string {
	return fmt.Sprintf("%s %s -> %s %s (rate %s)",
		q.FromAmount.String(), q.FromCurrency, q.ToAmount.String(), q.ToCurrency, q.Rate.String())
}
