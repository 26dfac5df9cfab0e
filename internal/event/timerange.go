package event

import (
	"errors"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"

	// DefaultDuration is the length given to events without an end time
	DefaultDuration = time.Hour
)

// LocalZone returns a fixed zone carrying the local UTC offset at the moment of
// the call. The offset does not follow later DST transitions.
func LocalZone() *time.Location {
	name, offset := time.Now().Zone()
	return time.FixedZone(name, offset)
}

// ParseTimeRange resolves text like "19:00" or "22:00-00:30" against date in loc.
//
// Without an end, the event lasts DefaultDuration. An end earlier than the
// start is moved forward 24 hours. A range that starts and ends on the same
// minute is rejected with ErrEmptyRange.
func ParseTimeRange(text string, date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	startText, endText, hasEnd := strings.Cut(text, "-")

	startClock, err := parseClock(startText)
	if err != nil {
		return time.Time{}, time.Time{}, &TimeError{Text: text, Err: err}
	}
	start := combine(date, startClock, loc)

	var end time.Time
	if hasEnd {
		endClock, err := parseClock(endText)
		if err != nil {
			return time.Time{}, time.Time{}, &TimeError{Text: text, Err: err}
		}
		end = combine(date, endClock, loc)
	} else {
		end = start.Add(DefaultDuration)
	}

	// Events past midnight
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}

	if end.Equal(start) {
		return time.Time{}, time.Time{}, &TimeError{Text: text, Err: ErrEmptyRange}
	}

	return start, end, nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time")
	}
	return time.Parse(clockLayout, s)
}

func combine(date, clock time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}
