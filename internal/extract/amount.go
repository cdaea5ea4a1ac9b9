package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency-prefixed number: ₹ / INR / Rs. followed by digits with optional
// thousands separators and up to 2 decimal places.
var amountPattern = regexp.MustCompile(`(?i)(?:₹|INR|Rs\.?)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

// Amount finds the monetary amount of the transaction. It returns the first
// positive currency-prefixed number in document order; transaction emails
// state the primary amount before secondary figures like fees or balances.
// Zero, negative or malformed matches are skipped; if nothing parses, the
// second return is false.
func Amount(text string) (decimal.Decimal, bool) {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		amt, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if amt.IsPositive() {
			return amt, true
		}
	}
	return decimal.Decimal{}, false
}
