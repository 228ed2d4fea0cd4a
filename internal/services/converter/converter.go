// Package converter computes bidirectional swap quotes between two
// catalog currencies.
package converter

import (
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
)

var one = decimal.NewFromInt(1)

// Quote derives the counterpart amount for an edit on one side of a swap.
// The edited side's amount is passed in; the other side is computed from
// catalog prices. The second return value is false when no quote can be
// resolved: a currency is missing from the catalog, both sides name the
// same currency, the amount is not positive, or a price is zero. Callers
// must leave amounts unchanged in that case.
//
// Each call is stateless. Tracking which side was last edited, and calling
// Quote only to fill the other one, is the caller's job.
func Quote(cat *domain.Catalog, fromCurrency, toCurrency string, amount decimal.Decimal, edited domain.Side) (domain.ConversionQuote, bool) {
	if fromCurrency == toCurrency || !amount.IsPositive() {
		return domain.ConversionQuote{}, false
	}

	fromPrice, ok := cat.PriceOf(fromCurrency)
	if !ok || fromPrice.IsZero() {
		return domain.ConversionQuote{}, false
	}
	toPrice, ok := cat.PriceOf(toCurrency)
	if !ok || toPrice.IsZero() {
		return domain.ConversionQuote{}, false
	}

	rate := fromPrice.Div(toPrice)

	var fromAmount, toAmount decimal.Decimal
	switch edited {
	case domain.SideFrom:
		fromAmount = amount
		// single division keeps error from compounding across direction switches
		toAmount = amount.Mul(fromPrice).Div(toPrice)
	case domain.SideTo:
		toAmount = amount
		fromAmount = amount.Mul(toPrice).Div(fromPrice)
	default:
		return domain.ConversionQuote{}, false
	}

	return domain.ConversionQuote{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		FromAmount:   fromAmount,
		ToAmount:     toAmount,
		Rate:         rate,
	}, true
}

// Swap relabels a previously computed quote in the opposite direction.
// Currencies and amounts trade places and the rate inverts. The catalog is
// never consulted, so the amount pair survives verbatim even if prices
// ticked since the quote was computed.
func Swap(q domain.ConversionQuote) domain.ConversionQuote {
	rate := decimal.Zero
	if !q.Rate.IsZero() {
		rate = one.Div(q.Rate)
	}
	return domain.ConversionQuote{
		FromCurrency: q.ToCurrency,
		ToCurrency:   q.FromCurrency,
		FromAmount:   q.ToAmount,
		ToAmount:     q.FromAmount,
		Rate:         rate,
	}
}
