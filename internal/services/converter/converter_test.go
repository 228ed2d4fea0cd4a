package converter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"tokendesk/internal/domain"
	"tokendesk/internal/services/catalog"
)

func testCatalog(prices map[string]float64) *domain.Catalog {
	records := make([]domain.PriceRecord, 0, len(prices))
	for currency, price := range prices {
		records = append(records, domain.PriceRecord{
			Currency:   currency,
			Price:      decimal.NewFromFloat(price),
			ObservedAt: time.Now(),
		})
	}
	return catalog.Build(records)
}

func TestQuote_FromSide(t *testing.T) {
	cat := testCatalog(map[string]float64{"ETH": 2500, "USDC": 1})

	q, ok := Quote(cat, "ETH", "USDC", decimal.NewFromInt(1), domain.SideFrom)
	require.True(t, ok)
	require.Equal(t, "2500.000000", q.FormattedTo(6))
	require.True(t, q.Rate.Equal(decimal.NewFromInt(2500)))
}

func TestQuote_ToSide(t *testing.T) {
	cat := testCatalog(map[string]float64{"ETH": 2500, "USDC": 1})

	q, ok := Quote(cat, "ETH", "USDC", decimal.NewFromInt(2500), domain.SideTo)
	require.True(t, ok)
	require.Equal(t, "1.000000", q.FormattedFrom(6))
	require.True(t, q.ToAmount.Equal(decimal.NewFromInt(2500)))
}

func TestQuote_InverseUnderDirectionSwitch(t *testing.T) {
	cat := testCatalog(map[string]float64{"ATOM": 9.37, "OSMO": 0.6129})

	forward, ok := Quote(cat, "ATOM", "OSMO", decimal.RequireFromString("3.141592"), domain.SideFrom)
	require.True(t, ok)

	back, ok := Quote(cat, "ATOM", "OSMO", forward.ToAmount, domain.SideTo)
	require.True(t, ok)
	require.Equal(t, "3.141592", back.FormattedFrom(6))
}

func TestQuote_Unresolved(t *testing.T) {
	cat := testCatalog(map[string]float64{"ETH": 2500, "USDC": 1})

	cases := []struct {
		name   string
		from   string
		to     string
		amount decimal.Decimal
		side   domain.Side
	}{
		{"missing from currency", "DOGE", "USDC", decimal.NewFromInt(1), domain.SideFrom},
		{"missing to currency", "ETH", "DOGE", decimal.NewFromInt(1), domain.SideFrom},
		{"same currency", "ETH", "ETH", decimal.NewFromInt(1), domain.SideFrom},
		{"zero amount", "ETH", "USDC", decimal.Zero, domain.SideFrom},
		{"negative amount", "ETH", "USDC", decimal.NewFromInt(-3), domain.SideTo},
		{"unknown side", "ETH", "USDC", decimal.NewFromInt(1), domain.Side("sideways")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Quote(cat, tc.from, tc.to, tc.amount, tc.side)
			require.False(t, ok)
		})
	}
}

func TestSwap_RelabelsWithoutCatalog(t *testing.T) {
	cat := testCatalog(map[string]float64{"ETH": 2500, "USDC": 1})
	q, ok := Quote(cat, "ETH", "USDC", decimal.NewFromInt(2), domain.SideFrom)
	require.True(t, ok)

	// prices may tick between edits; Swap must not care
	swapped := Swap(q)

	require.Equal(t, "USDC", swapped.FromCurrency)
	require.Equal(t, "ETH", swapped.ToCurrency)
	require.True(t, swapped.FromAmount.Equal(q.ToAmount))
	require.True(t, swapped.ToAmount.Equal(q.FromAmount))
	require.True(t, swapped.Rate.Mul(q.Rate).Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.New(1, -12)),
		"swapped rate must be the inverse, got %s", swapped.Rate.String())
}

func TestSwap_ZeroRate(t *testing.T) {
	swapped := Swap(domain.ConversionQuote{})
	require.True(t, swapped.Rate.IsZero())
}
