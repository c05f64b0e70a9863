package normalize

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
)

// fallbackLayouts are tried in order when the free-form parse fails.
// They are day-first variants plus ISO and textual-month forms.
var fallbackLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2006/1/2",
	"2-Jan-2006",
	"2-January-2006",
}

// DateNormalizer repairs heterogeneous date strings into calendar dates.
//
// A free-form parse runs first; its day-first vs month-first preference
// for ambiguous numeric dates (e.g. "05/03/2024") is controlled by the
// dayFirst flag. On failure a fixed list of explicit layouts is tried,
// first match wins. Anything still unparsed is absent, not an error.
type DateNormalizer struct {
	dayFirst bool
}

func NewDateNormalizer(dayFirst bool) *DateNormalizer {
	return &DateNormalizer{dayFirst: dayFirst}
}

// Normalize returns the canonical calendar date for raw, or nil when the
// input is blank or no supported representation matches.
func (n *DateNormalizer) Normalize(raw string) *civil.Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(!n.dayFirst)); err == nil {
		d := civil.DateOf(t)
		return &d
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := civil.DateOf(t)
			return &d
		}
	}

	return nil
}
