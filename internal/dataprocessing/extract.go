package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tolerant patterns for pulling scalar values out of free-form report
// lines. The currency pattern accepts an optional surrounding quote and
// thousands separators; the date pattern matches "Month Day, Year"
// tokens.
var (
	currencyPattern = regexp.MustCompile(`"?\$([0-9,]+\.?\d*)"?`)
	percentPattern  = regexp.MustCompile(`(\d+\.?\d*)%`)
	datePattern     = regexp.MustCompile(`([A-Za-z]+ \d{1,2}, \d{4})`)
)

var reportDateLayouts = []string{"Jan 2, 2006", "January 2, 2006"}

// ExtractCurrency returns the first dollar amount found in the text
// with separators stripped. Returns 0.0 when no amount is present;
// callers cannot distinguish a missing amount from a genuine zero.
func ExtractCurrency(text string) float64 {
	match := currencyPattern.FindStringSubmatch(text)
	if match == nil {
		return 0.0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0.0
	}
	return value
}

// ExtractPercentage returns the first percentage found in the text, or
// 0.0 when none is present.
func ExtractPercentage(text string) float64 {
	match := percentPattern.FindStringSubmatch(text)
	if match == nil {
		return 0.0
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0.0
	}
	return value
}

// ExtractLastDate finds every "Month Day, Year" token in a report date
// range and parses the last one. When no token parses, the reference
// time is returned, so a report with an unreadable header counts as
// current activity.
func ExtractLastDate(dateRange string, now time.Time) time.Time {
	matches := datePattern.FindAllStringSubmatch(dateRange, -1)
	if len(matches) == 0 {
		return now
	}

	last := matches[len(matches)-1][1]
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, last); err == nil {
			return t
		}
	}
	return now
}
