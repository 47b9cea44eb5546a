package stockcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseRupeeAmount parses a rupee amount string into paise. Grouping commas
// and a leading currency marker are tolerated: "1,234.56" -> 123456,
// "₹30.00" -> 3000, "30" -> 3000.
func parseRupeeAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₹")
	clean = strings.TrimPrefix(clean, "Rs.")
	clean = strings.ReplaceAll(clean, ",", "")

	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
