package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/schedule2ics/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDocument SortOrder = "document"
	SortByStart    SortOrder = "start"
	SortByTitle    SortOrder = "title"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByDocument, SortByStart, SortByTitle:
		return true
	}
	return false
}

// sortEvents sorts events in place. Document order is left untouched.
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByStart:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByStart(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by start
			return compareByStart(events[i], events[j])
		})
	}
}

// compareByStart reports whether i starts before j, breaking ties on the
// earlier end
func compareByStart(i, j *event.Event) bool {
	if !i.Start.Equal(j.Start) {
		return i.Start.Before(j.Start)
	}
	return i.End.Before(j.End)
}
