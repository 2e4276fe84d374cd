package notify

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders a currency amount for display. Integral amounts
// lose the fractional part entirely ("10", not "10.00"); everything else
// is rendered with two decimals and trailing zeros stripped ("10.5").
func FormatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return strconv.FormatInt(int64(amount), 10)
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
