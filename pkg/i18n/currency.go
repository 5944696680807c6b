package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyTag formats with "." thousand separators, as used in Chile.
var currencyTag = language.Spanish

// FormatCLP renders amount as whole Chilean pesos, e.g. "$1.234.567".
func FormatCLP(amount decimal.Decimal) string {
	p := message.NewPrinter(currencyTag)
	v := amount.Round(0).IntPart()
	if v < 0 {
		return p.Sprintf("-$%d", -v)
	}
	return p.Sprintf("$%d", v)
}
