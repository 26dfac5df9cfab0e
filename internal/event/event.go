package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents a single scheduled entry extracted from the page
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
}

// GenerateID creates a deterministic ID for an event based on its title,
// location and start instant
func GenerateID(title, location string, start time.Time) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title)) + "|" +
		strings.ToLower(strings.TrimSpace(location)) + "|" +
		start.UTC().Format(time.RFC3339)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewEvent creates a new Event with its ID populated
func NewEvent(title, location string, start, end time.Time, description, link string) *Event {
	return &Event{
		ID:          GenerateID(title, location, start),
		Title:       title,
		Location:    location,
		Start:       start,
		End:         end,
		Description: description,
		Link:        link,
	}
}

// Duration returns the length of the event
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Day returns the calendar day the event starts on, formatted as YYYY-MM-DD
func (e *Event) Day() string {
	return e.Start.Format("2006-01-02")
}

// CalendarDescription joins the description and link the way they appear in
// the calendar file. Empty parts are left out.
func (e *Event) CalendarDescription() string {
	parts := make([]string, 0, 2)
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Link != "" {
		parts = append(parts, e.Link)
	}
	return strings.Join(parts, "\n")
}
