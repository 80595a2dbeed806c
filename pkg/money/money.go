// Package money holds prices as integer euro cents and renders them the
// way the storefront displays them (it-IT locale).
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Cents int64

var printer = message.NewPrinter(language.Italian)

// Format renders cents as an it-IT currency string, e.g. 4599 -> "45,99 €".
func Format(c Cents) string {
	return printer.Sprintf("%.2f €", float64(c)/100)
}
