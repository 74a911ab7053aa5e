package utils

import "fmt"

// currencySymbols covers the display currencies a user can pick at signup.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// IsSupportedCurrency reports whether the code is one a user can pick as
// their display currency.
func IsSupportedCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// FormatAmount renders an amount in the given currency, falling back to the
// currency code as a prefix when no symbol is known.
func FormatAmount(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		return fmt.Sprintf("%s %.2f", currency, amount)
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
