package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonNumericChars = regexp.MustCompile(`[^\d.\-]`)
	dotRuns         = regexp.MustCompile(`\.{2,}`)
)

// Amount coerces a noisy amount string into a value rounded to 2 decimal
// places, or nil when the input is blank or unparsable. Currency symbols
// and thousands separators are stripped, runs of periods collapsed, and
// repeated minus signs folded into a single leading negative.
func Amount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = nonNumericChars.ReplaceAllString(s, "")
	s = dotRuns.ReplaceAllString(s, ".")
	if strings.Count(s, "-") > 1 {
		s = "-" + strings.ReplaceAll(s, "-", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := Round2(f)
	return &v
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
