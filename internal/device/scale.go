package device

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// weightPattern extracts the first decimal number from a scale line, e.g.
// "+  12.34 g". Scales in locales that print "12,34" are handled by
// normalizing the comma first.
var weightPattern = regexp.MustCompile(`[-+]?\s*(\d+\.\d+)`)

// parseWeight extracts a weight from one complete scale line. The boolean is
// false when the line carries no recognizable number; such lines are noise
// and never an error.
func parseWeight(line string) (decimal.Decimal, bool) {
	normalized := strings.ReplaceAll(line, ",", ".")

	match := weightPattern.FindStringSubmatch(normalized)
	if match == nil {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}
