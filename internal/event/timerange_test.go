package event

import (
	"errors"
	"testing"
	"time"
)

var cet = time.FixedZone("CET", 3600)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		date      time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "same day range",
			text:      "19:00-21:30",
			date:      time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 12, 19, 0, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 12, 21, 30, 0, 0, cet),
		},
		{
			name:      "overnight range",
			text:      "22:00-00:30",
			date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 22, 0, 0, 0, cet),
			wantEnd:   time.Date(2024, 1, 2, 0, 30, 0, 0, cet),
		},
		{
			name:      "overnight range at year end",
			text:      "23:00-01:00",
			date:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 12, 31, 23, 0, 0, 0, cet),
			wantEnd:   time.Date(2025, 1, 1, 1, 0, 0, 0, cet),
		},
		{
			name:      "start only",
			text:      "09:00",
			date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 5, 9, 0, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 5, 10, 0, 0, 0, cet),
		},
		{
			name:      "start only late evening",
			text:      "23:30",
			date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 5, 23, 30, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 6, 0, 30, 0, 0, cet),
		},
		{
			name:      "single digit hour",
			text:      "9:15-10:45",
			date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 5, 9, 15, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 5, 10, 45, 0, 0, cet),
		},
		{
			name:      "spaces around dash",
			text:      " 18:00 - 20:00 ",
			date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 5, 18, 0, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 5, 20, 0, 0, 0, cet),
		},
		{
			name:      "date with time of day is truncated",
			text:      "10:00-11:00",
			date:      time.Date(2024, 3, 5, 15, 45, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 5, 10, 0, 0, 0, cet),
			wantEnd:   time.Date(2024, 3, 5, 11, 0, 0, 0, cet),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseTimeRange(tt.text, tt.date, cet)
			if err != nil {
				t.Fatalf("ParseTimeRange(%q) unexpected error: %v", tt.text, err)
			}

			if !start.Equal(tt.wantStart) {
				t.Errorf("ParseTimeRange(%q) start = %v, want %v", tt.text, start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("ParseTimeRange(%q) end = %v, want %v", tt.text, end, tt.wantEnd)
			}
			if !end.After(start) {
				t.Errorf("ParseTimeRange(%q) end %v is not after start %v", tt.text, end, start)
			}
			if start.Location() != cet {
				t.Errorf("ParseTimeRange(%q) location = %v, want %v", tt.text, start.Location(), cet)
			}
		})
	}
}

func TestParseTimeRange_SameDayDurationMatchesText(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		text string
		want time.Duration
	}{
		{"08:00-08:01", time.Minute},
		{"10:00-12:00", 2 * time.Hour},
		{"00:00-23:59", 23*time.Hour + 59*time.Minute},
		{"13:15-17:45", 4*time.Hour + 30*time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			start, end, err := ParseTimeRange(tt.text, date, cet)
			if err != nil {
				t.Fatalf("ParseTimeRange(%q) unexpected error: %v", tt.text, err)
			}
			if got := end.Sub(start); got != tt.want {
				t.Errorf("ParseTimeRange(%q) duration = %v, want %v", tt.text, got, tt.want)
			}
			if end.Day() != start.Day() {
				t.Errorf("ParseTimeRange(%q) should not roll over, end = %v", tt.text, end)
			}
		})
	}
}

func TestParseTimeRange_Errors(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		text      string
		wantEmpty bool
	}{
		{name: "empty", text: ""},
		{name: "words", text: "all day"},
		{name: "hour out of range", text: "25:00"},
		{name: "minute out of range", text: "10:75"},
		{name: "bad end", text: "10:00-late"},
		{name: "dangling dash", text: "10:00-"},
		{name: "three parts", text: "10:00-11:00-12:00"},
		{name: "dotted time", text: "10.00"},
		{name: "zero length", text: "10:00-10:00", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTimeRange(tt.text, date, cet)
			if err == nil {
				t.Fatalf("ParseTimeRange(%q) expected error, got nil", tt.text)
			}

			var timeErr *TimeError
			if !errors.As(err, &timeErr) {
				t.Errorf("ParseTimeRange(%q) error = %T, want *TimeError", tt.text, err)
			}
			if got := errors.Is(err, ErrEmptyRange); got != tt.wantEmpty {
				t.Errorf("errors.Is(err, ErrEmptyRange) = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestParseTimeRange_NilLocation(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	start, _, err := ParseTimeRange("10:00", date, nil)
	if err != nil {
		t.Fatalf("ParseTimeRange() unexpected error: %v", err)
	}
	if start.Location() != time.Local {
		t.Errorf("location = %v, want Local", start.Location())
	}
}

func TestLocalZone(t *testing.T) {
	_, wantOffset := time.Now().Zone()

	zone := LocalZone()
	_, gotOffset := time.Date(2024, 1, 1, 12, 0, 0, 0, zone).Zone()
	if gotOffset != wantOffset {
		t.Errorf("LocalZone() offset = %d, want %d", gotOffset, wantOffset)
	}

	// A fixed zone keeps the same offset all year
	_, summerOffset := time.Date(2024, 7, 1, 12, 0, 0, 0, zone).Zone()
	if summerOffset != gotOffset {
		t.Errorf("LocalZone() offset changed across the year: %d vs %d", gotOffset, summerOffset)
	}
}
