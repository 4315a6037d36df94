package extract

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// amountPattern pairs a matcher with the validator applied to its first
// match. Patterns are evaluated most-specific first; within a pattern
// only the first match in the text is considered.
type amountPattern struct {
	re *regexp.Regexp
}

// Ordered most-specific first: labelled totals before bare dollar
// amounts before bare decimals.
var amountPatterns = []amountPattern{
	{re: regexp.MustCompile(`(?i)total[:\s]*\$?\s*(\d+\.?\d{0,2})`)},
	{re: regexp.MustCompile(`(?i)amount[:\s]*\$?\s*(\d+\.?\d{0,2})`)},
	{re: regexp.MustCompile(`(?i)sum[:\s]*\$?\s*(\d+\.?\d{0,2})`)},
	{re: regexp.MustCompile(`\$\s*(\d+\.\d{2})`)},
	{re: regexp.MustCompile(`(\d+\.\d{2})`)},
}

var (
	amountMin = decimal.Zero
	amountMax = decimal.NewFromInt(10000)
)

// ExtractAmount returns the most plausible monetary amount found in the
// raw text, rounded to 2 decimal places. The second return value is
// false when no pattern yields a value in the open range (0, 10000); a
// pattern whose first match is out of range does not fail the whole
// extraction, the next pattern is tried instead.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	for _, p := range amountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		if value.GreaterThan(amountMin) && value.LessThan(amountMax) {
			return value.Round(2), true
		}
	}
	return decimal.Zero, false
}
