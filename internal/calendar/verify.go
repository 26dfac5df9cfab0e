package calendar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/pfrederiksen/schedule2ics/internal/event"
)

// Entry is a VEVENT as recovered from a calendar file
type Entry struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// ReadEntries decodes every VEVENT of every calendar in r
func ReadEntries(r io.Reader) ([]Entry, error) {
	dec := ical.NewDecoder(r)
	entries := make([]Entry, 0)

	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}

		for _, vevent := range cal.Events() {
			entry, err := readEntry(vevent)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ReadFile decodes the VEVENTs of the calendar file at path
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar: %w", err)
	}
	defer f.Close()

	return ReadEntries(f)
}

func readEntry(vevent ical.Event) (Entry, error) {
	var entry Entry
	var err error

	if entry.UID, err = vevent.Props.Text(ical.PropUID); err != nil {
		return entry, fmt.Errorf("reading UID: %w", err)
	}
	if entry.Summary, err = vevent.Props.Text(ical.PropSummary); err != nil {
		return entry, fmt.Errorf("reading summary of %s: %w", entry.UID, err)
	}
	if entry.Location, err = vevent.Props.Text(ical.PropLocation); err != nil {
		return entry, fmt.Errorf("reading location of %s: %w", entry.UID, err)
	}
	if entry.Description, err = vevent.Props.Text(ical.PropDescription); err != nil {
		return entry, fmt.Errorf("reading description of %s: %w", entry.UID, err)
	}
	if entry.Start, err = vevent.DateTimeStart(time.UTC); err != nil {
		return entry, fmt.Errorf("reading start of %s: %w", entry.UID, err)
	}
	if entry.End, err = vevent.DateTimeEnd(time.UTC); err != nil {
		return entry, fmt.Errorf("reading end of %s: %w", entry.UID, err)
	}

	return entry, nil
}

// Verify checks that every event was written to entries with the same summary,
// location and time range. Instants are compared, not their zones.
func Verify(entries []Entry, events []*event.Event) error {
	byUID := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byUID[entry.UID] = entry
	}

	var errs []error
	for _, evt := range events {
		uid := UID(evt)
		entry, ok := byUID[uid]
		if !ok {
			errs = append(errs, fmt.Errorf("event %q (%s) missing from calendar", evt.Title, uid))
			continue
		}

		if entry.Summary != evt.Title {
			errs = append(errs, fmt.Errorf("event %s: summary %q, want %q", uid, entry.Summary, evt.Title))
		}
		if entry.Location != evt.Location {
			errs = append(errs, fmt.Errorf("event %s: location %q, want %q", uid, entry.Location, evt.Location))
		}
		if !entry.Start.Equal(evt.Start) || !entry.End.Equal(evt.End) {
			errs = append(errs, fmt.Errorf("event %s: time range %s-%s, want %s-%s", uid,
				entry.Start.Format(time.RFC3339), entry.End.Format(time.RFC3339),
				evt.Start.Format(time.RFC3339), evt.End.Format(time.RFC3339)))
		}
	}

	if len(entries) != len(events) {
		errs = append(errs, fmt.Errorf("calendar has %d events, want %d", len(entries), len(events)))
	}

	return errors.Join(errs...)
}
