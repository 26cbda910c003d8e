package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses an amount string as found in legacy exports. German
// exports use a comma decimal separator and a dot thousands separator
// ("1.234,56"); plain dot-decimal values are accepted too.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "EUR", "")
	amount = strings.ReplaceAll(amount, "€", "")

	if strings.Contains(amount, ",") {
		// German notation: dot is a thousands separator
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
