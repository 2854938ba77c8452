// Package format renders monetary amounts for human-readable output.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// Amount returns an amount with thousands separators and two decimals (e.g., "-1,234.56").
func Amount(amount float64) string {
	rounded := mathutil.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + formatPositiveAmount(math.Abs(rounded))
}

// Currency prefixes Amount with a currency code (e.g., "EGP 1,234.56"). An
// empty code yields the bare amount.
func Currency(amount float64, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Amount(amount)
	}
	return code + " " + Amount(amount)
}

// Percent renders a percentage with up to four decimals (e.g., "12.5%").
func Percent(value float64) string {
	formatted := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", value), "0"), ".")
	return formatted + "%"
}

func formatPositiveAmount(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
