package recommend

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatPoints renders with thousands grouping and at most three decimals.
func formatPoints(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
