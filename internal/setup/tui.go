// Package setup provides the interactive terminal swap form.
package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"tokendesk/internal/domain"
	"tokendesk/internal/services/converter"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	quoteStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	rateStyle = lipgloss.NewStyle().
			Foreground(subtle)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
)

// RunSwapForm drives an interactive currency swap against a catalog
// snapshot. It loops until the user quits; each round asks for the two
// currencies and an amount on either side, then shows the derived
// counterpart amount and rate.
func RunSwapForm(cat *domain.Catalog, precision int32) error {
	entries := cat.Entries()
	if len(entries) == 0 {
		return fmt.Errorf("catalog is empty, nothing to swap")
	}

	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		options = append(options, huh.NewOption(fmt.Sprintf("%s ($%s)", e.Currency, e.Price.String()), e.Currency))
	}

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("TOKENDESK SWAP"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Pick two currencies and an amount on either side.\n"))

	for {
		var (
			from      string
			to        string
			amountStr string
			sideStr   string
		)
		sideStr = string(domain.SideFrom)

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("From currency").
					Options(options...).
					Value(&from),
				huh.NewSelect[string]().
					Title("To currency").
					Options(options...).
					Value(&to),
				huh.NewSelect[string]().
					Title("Which amount are you entering?").
					Options(
						huh.NewOption("Amount to send (from)", string(domain.SideFrom)),
						huh.NewOption("Amount to receive (to)", string(domain.SideTo)),
					).
					Value(&sideStr),
				huh.NewInput().
					Title("Amount").
					Validate(func(s string) error {
						amount, err := decimal.NewFromString(s)
						if err != nil {
							return fmt.Errorf("not a number")
						}
						if !amount.IsPositive() {
							return fmt.Errorf("amount must be positive")
						}
						return nil
					}).
					Value(&amountStr),
			),
		).Run()
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return err
		}

		quote, ok := converter.Quote(cat, from, to, amount, domain.Side(sideStr))
		if !ok {
			fmt.Println(warnStyle.Render("No quote available for that selection."))
		} else {
			printQuote(quote, precision)

			var swap bool
			if err := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().Title("Swap direction?").Value(&swap),
			)).Run(); err != nil {
				return err
			}
			if swap {
				printQuote(converter.Swap(quote), precision)
			}
		}

		var again bool
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Another quote?").Value(&again),
		)).Run(); err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func printQuote(q domain.ConversionQuote, precision int32) {
	fmt.Println(quoteStyle.Render(fmt.Sprintf("%s %s  →  %s %s",
		q.FormattedFrom(precision), q.FromCurrency, q.FormattedTo(precision), q.ToCurrency)))
	fmt.Println(rateStyle.Render(fmt.Sprintf("1 %s = %s %s", q.FromCurrency, q.Rate.StringFixed(precision), q.ToCurrency)))
}
