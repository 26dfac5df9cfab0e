package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for date headings, tried in order
var dateLayouts = []string{
	"2 January", // "12 March"
	"2.1.",      // "12.03."
}

// ParseDate parses a date heading such as "12 March - Spring Festival" or
// "12.03. - Opening". Everything after the first "-" is ignored and the
// result always takes the given year. Only the year, month and day of the
// returned time are meaningful.
func ParseDate(heading string, year int) (time.Time, error) {
	text, _, _ := strings.Cut(heading, "-")
	// Page builders often separate day and month with a non-breaking space
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return time.Time{}, &DateError{Text: heading, Err: errors.New("empty date text")}
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			lastErr = err
			continue
		}

		date := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// 29 February only exists in leap years
		if date.Month() != t.Month() {
			return time.Time{}, &DateError{
				Text: heading,
				Err:  fmt.Errorf("day %d %s does not exist in %d", t.Day(), t.Month(), year),
			}
		}
		return date, nil
	}

	return time.Time{}, &DateError{Text: heading, Err: lastErr}
}
