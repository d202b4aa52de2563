package parser

import (
	"strings"
	"time"
)

// headingDatePatterns are tried in order against the date substring of a
// section heading, e.g. "Mon, 3 Jun 2024" or "3 Jun 2024".
var headingDatePatterns = []string{
	"Mon, 2 Jan 2006",
	"2 Jan 2006",
}

// parseHeadingDate returns the first pattern match as a UTC midnight date.
// Unparseable input falls back to today's date so a single malformed heading
// does not abort the run.
func parseHeadingDate(text string, today time.Time) time.Time {
	text = strings.TrimSpace(text)
	for _, pattern := range headingDatePatterns {
		if t, err := time.Parse(pattern, text); err == nil {
			return midnightUTC(t)
		}
	}
	return midnightUTC(today)
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
