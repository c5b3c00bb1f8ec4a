package extract

import (
	"strconv"
	"strings"
)

// currencySymbols maps ISO-ish currency codes to display symbols. The shekel
// is the default for the target market.
var currencySymbols = map[string]string{
	"ILS": "₪",
	"NIS": "₪",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

const defaultSymbol = "₪"

// NormalizePrice converts a raw price string into the canonical display
// string, e.g. "99.90 ₪" or "$49.99". A string that already carries a
// recognized symbol passes through trimmed. The shekel symbol is suffixed,
// all others prefixed, matching the target market's convention. Unparseable
// numeric content is returned unchanged; this function never panics.
func NormalizePrice(raw, currency string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.ContainsAny(trimmed, "₪$€£") {
		return trimmed
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return raw
	}

	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = defaultSymbol
	}

	formatted := strconv.FormatFloat(value, 'f', 2, 64)
	if symbol == defaultSymbol {
		return formatted + " " + symbol
	}
	return symbol + formatted
}
