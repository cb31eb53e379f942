package tabular

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats seen across merchant exports, tried in
// order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate parses a cell value into a date, trying the known export
// layouts in order. Returns nil when the value is empty or matches no
// layout.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// ParseFloat parses a numeric cell value, tolerating thousands
// separators, a leading currency sign and surrounding quotes. Returns 0
// when the value is empty or not numeric.
func ParseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
