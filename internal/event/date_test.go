package event

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		heading   string
		year      int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{
			name:      "Month name with suffix",
			heading:   "12 March - Opening",
			year:      2024,
			wantMonth: time.March,
			wantDay:   12,
		},
		{
			name:      "Numeric with suffix",
			heading:   "12.03. - Opening",
			year:      2024,
			wantMonth: time.March,
			wantDay:   12,
		},
		{
			name:      "Month name only",
			heading:   "1 June",
			year:      2024,
			wantMonth: time.June,
			wantDay:   1,
		},
		{
			name:      "Lowercase month name",
			heading:   "7 september",
			year:      2024,
			wantMonth: time.September,
			wantDay:   7,
		},
		{
			name:      "Numeric without leading zeros",
			heading:   "5.3.",
			year:      2024,
			wantMonth: time.March,
			wantDay:   5,
		},
		{
			name:      "Surrounding whitespace",
			heading:   "   24 December   -   Christmas Eve",
			year:      2025,
			wantMonth: time.December,
			wantDay:   24,
		},
		{
			name:      "Non-breaking space",
			heading:   "12\u00a0March - Opening",
			year:      2024,
			wantMonth: time.March,
			wantDay:   12,
		},
		{
			name:      "Repeated inner whitespace",
			heading:   "3 \t April",
			year:      2024,
			wantMonth: time.April,
			wantDay:   3,
		},
		{
			name:      "Leap day in leap year",
			heading:   "29 February",
			year:      2024,
			wantMonth: time.February,
			wantDay:   29,
		},
		{
			name:    "Leap day in common year",
			heading: "29 February",
			year:    2023,
			wantErr: true,
		},
		{
			name:    "Day out of range",
			heading: "31 April",
			year:    2024,
			wantErr: true,
		},
		{
			name:    "Abbreviated month",
			heading: "12 Mar",
			year:    2024,
			wantErr: true,
		},
		{
			name:    "Numeric with year",
			heading: "12.03.2024",
			year:    2024,
			wantErr: true,
		},
		{
			name:    "Garbage",
			heading: "garbage",
			year:    2024,
			wantErr: true,
		},
		{
			name:    "Only a suffix",
			heading: "- Opening",
			year:    2024,
			wantErr: true,
		},
		{
			name:    "Empty",
			heading: "",
			year:    2024,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.heading, tt.year)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.heading, got)
				}
				var dateErr *DateError
				if !errors.As(err, &dateErr) {
					t.Errorf("ParseDate(%q) error = %T, want *DateError", tt.heading, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.heading, err)
			}
			if got.Year() != tt.year {
				t.Errorf("ParseDate(%q).Year() = %d, want %d", tt.heading, got.Year(), tt.year)
			}
			if got.Month() != tt.wantMonth {
				t.Errorf("ParseDate(%q).Month() = %v, want %v", tt.heading, got.Month(), tt.wantMonth)
			}
			if got.Day() != tt.wantDay {
				t.Errorf("ParseDate(%q).Day() = %d, want %d", tt.heading, got.Day(), tt.wantDay)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseDate(%q) = %v, want midnight", tt.heading, got)
			}
		})
	}
}

func TestParseDate_BothLayoutsAgree(t *testing.T) {
	byName, err := ParseDate("12 March - Opening", 2024)
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	byNumber, err := ParseDate("12.03. - Opening", 2024)
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}

	if !byName.Equal(byNumber) {
		t.Errorf("layouts disagree: %v vs %v", byName, byNumber)
	}

	want := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !byName.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", byName, want)
	}
}
