package event

import (
	"errors"
	"fmt"
)

// ErrEmptyRange is returned when a time range ends at the same minute it starts
var ErrEmptyRange = errors.New("time range has zero length")

// DateError reports a date heading that matched none of the supported layouts
type DateError struct {
	Text string
	Err  error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("parsing date %q: %v", e.Text, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// TimeError reports a malformed time or time range
type TimeError struct {
	Text string
	Err  error
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("parsing time %q: %v", e.Text, e.Err)
}

func (e *TimeError) Unwrap() error {
	return e.Err
}
