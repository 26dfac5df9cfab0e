package scraper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/schedule2ics/internal/event"
	"github.com/pfrederiksen/schedule2ics/internal/logger"
)

const (
	headingSelector    = "h2"
	textEditorSelector = `div[data-widget_type="text-editor.default"]`
	linkSelector       = "a"
)

// ErrNoDateMarker is returned when an event group appears before any date marker
var ErrNoDateMarker = errors.New("event block encountered with no preceding date marker")

// MalformedEventError describes an event container that looked like an event
// but could not be turned into one
type MalformedEventError struct {
	Block string // outer HTML of the offending container
	Err   error
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed event block: %v", e.Err)
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}

// Cursor is the state carried from one top-level block to the next
type Cursor struct {
	Date    time.Time
	HasDate bool
}

// GroupResult holds what one top-level block produced. DateMarker is set
// when the block was classified as a date marker, even if its date failed to parse.
type GroupResult struct {
	DateMarker bool
	Events     []*event.Event
	Skipped    []*MalformedEventError
}

// Step folds one top-level block into the cursor. Date markers move the cursor
// to a new day; event groups are extracted against the current day.
func (s *Scraper) Step(cur Cursor, block *goquery.Selection) (Cursor, GroupResult, error) {
	if s.classifier.IsDateMarker(block) {
		marker := GroupResult{DateMarker: true}
		date, err := s.parseDateBlock(block)
		if err != nil {
			// A failed marker clears the day so later groups are not misdated
			return Cursor{}, marker, err
		}
		logger.IncrCounter("blocks.date")
		logger.Debug("Date marker", logger.Fields{"date": date.Format("2006-01-02")})
		return Cursor{Date: date, HasDate: true}, marker, nil
	}

	logger.IncrCounter("blocks.group")
	if !cur.HasDate {
		return cur, GroupResult{}, ErrNoDateMarker
	}

	return cur, ParseEventGroup(block, cur.Date, s.location), nil
}

// parseDateBlock reads the date from the first heading of a date-marker block
func (s *Scraper) parseDateBlock(block *goquery.Selection) (time.Time, error) {
	heading := block.Find(headingSelector).First()
	if heading.Length() == 0 {
		return time.Time{}, &event.DateError{Err: errors.New("date block has no heading")}
	}
	return event.ParseDate(heading.Text(), s.year)
}

// eventContainers returns the div children of every inner region of a group,
// in document order. Regions nested inside another container are part of that
// container and are not returned separately.
func eventContainers(block *goquery.Selection) *goquery.Selection {
	candidates := block.Find(innerContainerSelector).ChildrenFiltered("div")
	return candidates.FilterFunction(func(_ int, child *goquery.Selection) bool {
		return child.ParentsFiltered("div").FilterSelection(candidates).Length() == 0
	})
}

// ParseEventGroup extracts one event per container of the group's inner regions.
// A group may lay its events out over several rows, each with its own region.
// Malformed containers are logged and reported in Skipped; they never stop the
// remaining containers from being parsed.
func ParseEventGroup(block *goquery.Selection, date time.Time, loc *time.Location) GroupResult {
	var result GroupResult

	eventContainers(block).Each(func(i int, child *goquery.Selection) {
		evt, err := ParseEvent(child, date, loc)
		if err != nil {
			var malformed *MalformedEventError
			if !errors.As(err, &malformed) {
				malformed = &MalformedEventError{Block: outerHTML(child), Err: err}
			}
			logger.Error("Unable to parse event", logger.Fields{
				"block": malformed.Block,
				"date":  date.Format("2006-01-02"),
			}, malformed.Err)
			logger.IncrCounter("events.skipped")
			result.Skipped = append(result.Skipped, malformed)
			return
		}
		if evt == nil {
			return
		}

		logger.IncrCounter("events.extracted")
		logger.Debug("Parsed event", logger.Fields{
			"title": evt.Title,
			"start": evt.Start.Format(time.RFC3339),
			"end":   evt.End.Format(time.RFC3339),
		})
		result.Events = append(result.Events, evt)
	})

	return result
}

// ParseEvent builds an Event from one event container.
//
// It returns (nil, nil) for containers without a title heading, which are
// decoration rather than events, and a *MalformedEventError for containers
// that have a title but lack the rest of the expected structure.
func ParseEvent(child *goquery.Selection, date time.Time, loc *time.Location) (*event.Event, error) {
	title := strings.TrimSpace(child.Find(headingSelector).First().Text())
	if title == "" {
		return nil, nil
	}

	malformed := func(err error) error {
		return &MalformedEventError{Block: outerHTML(child), Err: err}
	}

	content := child.Find(textEditorSelector)
	if content.Length() < 2 {
		return nil, malformed(fmt.Errorf("event %q has %d text blocks, need location and time", title, content.Length()))
	}

	location := strings.TrimSpace(content.Eq(0).Text())
	timeText := strings.TrimSpace(content.Eq(1).Text())

	var description string
	if content.Length() > 2 {
		description = strings.TrimSpace(content.Eq(2).Text())
	}

	link, _ := child.Find(linkSelector).First().Attr("href")

	start, end, err := event.ParseTimeRange(timeText, date, loc)
	if err != nil {
		return nil, malformed(err)
	}

	return event.NewEvent(title, location, start, end, description, strings.TrimSpace(link)), nil
}

func outerHTML(sel *goquery.Selection) string {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return strings.TrimSpace(sel.Text())
	}
	return html
}
