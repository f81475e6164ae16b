// Package format renders money and counts for terminal output.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money renders an amount in minor currency units, e.g. 123456 USD ->
// "$1,234.56". Unknown currencies fall back to a code suffix.
func Money(minor int64, currency string) string {
	amount := float64(minor) / 100
	switch currency {
	case "USD", "":
		return printer.Sprintf("$%.2f", amount)
	case "EUR":
		return printer.Sprintf("€%.2f", amount)
	case "GBP":
		return printer.Sprintf("£%.2f", amount)
	default:
		return printer.Sprintf("%.2f %s", amount, currency)
	}
}

// Count renders an integer with grouping separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
