package checkout

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const CurrencySymbol = "৳"

const priceMaxFractionDigits = 3

// Thousands grouping with up to three fraction digits, trailing zeros
// dropped: 125000 -> ৳125,000, 12.5 -> ৳12.5.
var pricePrinter = message.NewPrinter(language.English)

func FormatPrice(v float64) string {
	return pricePrinter.Sprintf("%s%v", CurrencySymbol, number.Decimal(v, number.MaxFractionDigits(priceMaxFractionDigits)))
}
