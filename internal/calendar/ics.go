package calendar

import (
	"fmt"
	"io"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/schedule2ics/internal/event"
)

const (
	DefaultProductID = "-//schedule2ics//schedule2ics//EN"
	uidDomain        = "schedule2ics"
)

// Options controls calendar-level properties of the generated file
type Options struct {
	// Name becomes X-WR-CALNAME when set
	Name string
	// ProductID overrides DefaultProductID
	ProductID string
	// Stamp is used as DTSTAMP for every event; defaults to now
	Stamp time.Time
}

// Build creates a calendar with one VEVENT per event, in the given order
func Build(events []*event.Event, opts Options) *ics.Calendar {
	productID := opts.ProductID
	if productID == "" {
		productID = DefaultProductID
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, evt := range events {
		vevent := cal.AddEvent(UID(evt))
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(evt.Start)
		vevent.SetEndAt(evt.End)
		vevent.SetSummary(evt.Title)

		if evt.Location != "" {
			vevent.SetLocation(evt.Location)
		}
		if description := evt.CalendarDescription(); description != "" {
			vevent.SetDescription(description)
		}
		if evt.Link != "" {
			vevent.SetURL(evt.Link)
		}
	}

	return cal
}

// GenerateICS returns the serialized calendar for events
func GenerateICS(events []*event.Event, opts Options) string {
	return Build(events, opts).Serialize()
}

// Write serializes the calendar for events to w
func Write(w io.Writer, events []*event.Event, opts Options) error {
	if _, err := io.WriteString(w, GenerateICS(events, opts)); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// WriteFile writes the calendar for events to path, replacing any existing file
func WriteFile(path string, events []*event.Event, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", closeErr)
		}
	}()

	return Write(f, events, opts)
}

// UID returns the VEVENT UID used for evt
func UID(evt *event.Event) string {
	id := evt.ID
	if id == "" {
		id = event.GenerateID(evt.Title, evt.Location, evt.Start)
	}
	return fmt.Sprintf("%s@%s", id, uidDomain)
}
