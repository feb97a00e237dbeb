// Package money renders rupiah amounts the way the storefront displays them.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// Format groups thousands with a dot: 129000 becomes "129.000".
func Format(amount int64) string {
	return printer.Sprintf("%d", amount)
}

// Rupiah is Format with the "Rp " prefix.
func Rupiah(amount int64) string {
	return "Rp " + Format(amount)
}
