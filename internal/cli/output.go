package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/schedule2ics/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Input       string         `json:"input"`
	Output      string         `json:"output"`
	Events      []*event.Event `json:"events"`
	EventCount  int            `json:"event_count"`
	Skipped     int            `json:"skipped"`
	Verified    bool           `json:"verified,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Events == nil {
		result.Events = []*event.Event{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, grouped by start day
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
	} else {
		days, byDay := groupByDay(result.Events)

		for _, day := range days {
			events := byDay[day]
			fmt.Fprintf(w, "\n%s (%d %s):\n", day, len(events), plural(len(events), "event", "events"))
			for _, evt := range events {
				line := fmt.Sprintf("  %s-%s  %s", evt.Start.Format("15:04"), evt.End.Format("15:04"), evt.Title)
				if evt.Location != "" {
					line += " @ " + evt.Location
				}
				fmt.Fprintln(w, line)

				if verbose {
					fmt.Fprintf(w, "       ID: %s\n", evt.ID)
					if evt.Description != "" {
						fmt.Fprintf(w, "       Description: %s\n", evt.Description)
					}
					if evt.Link != "" {
						fmt.Fprintf(w, "       Link: %s\n", evt.Link)
					}
				}
			}
		}

		fmt.Fprintf(w, "\nTotal: %d %s across %d %s\n", result.EventCount,
			plural(result.EventCount, "event", "events"), len(days), plural(len(days), "day", "days"))
	}

	if result.Skipped > 0 {
		fmt.Fprintf(w, "Skipped: %d %s (see log for details)\n", result.Skipped, plural(result.Skipped, "block", "blocks"))
	}
	if result.Output != "" {
		fmt.Fprintf(w, "Calendar written to %s", result.Output)
		if result.Verified {
			fmt.Fprint(w, " (verified)")
		}
		fmt.Fprintln(w)
	}

	return nil
}

// groupByDay returns the start days in first-seen order and the events of each
func groupByDay(events []*event.Event) ([]string, map[string][]*event.Event) {
	days := make([]string, 0)
	byDay := make(map[string][]*event.Event)
	for _, evt := range events {
		day := evt.Day()
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], evt)
	}
	return days, byDay
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
