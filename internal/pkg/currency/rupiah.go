package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Rupiah formats whole Rupiah with comma grouping, e.g. "Rp 1,234,567".
func Rupiah(amount int64) string {
	return printer.Sprintf("Rp %d", amount)
}
