package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/schedule2ics/internal/event"
	"github.com/pfrederiksen/schedule2ics/internal/logger"
)

const (
	UserAgent = "schedule2ics/1.0 (github.com/pfrederiksen/schedule2ics)"
	Timeout   = 30 * time.Second

	// StdinSource reads the page from standard input
	StdinSource = "-"
)

// Options configures a Scraper. Zero values select the defaults.
type Options struct {
	// Year assigned to every date heading; defaults to the current year
	Year int
	// Location events are placed in; defaults to event.LocalZone()
	Location *time.Location
	// Classifier tells date markers from event groups; defaults to StructuralClassifier
	Classifier Classifier
	// Lenient turns date and orphan-group failures into skipped blocks
	Lenient bool
}

// Scraper loads schedule pages and extracts their events
type Scraper struct {
	client     *http.Client
	stdin      io.Reader
	year       int
	location   *time.Location
	classifier Classifier
	lenient    bool
}

// Result holds the events of a page and every block that was skipped
type Result struct {
	Events      []*event.Event
	Skipped     []error
	DateBlocks  int
	GroupBlocks int
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		stdin:      os.Stdin,
		year:       opts.Year,
		location:   opts.Location,
		classifier: opts.Classifier,
		lenient:    opts.Lenient,
	}

	if s.year == 0 {
		s.year = time.Now().Year()
	}
	if s.location == nil {
		s.location = event.LocalZone()
	}
	if s.classifier == nil {
		s.classifier = StructuralClassifier{}
	}

	return s
}

// Load reads the page from source, which is a file path, an http(s) URL or
// StdinSource, and extracts its events
func (s *Scraper) Load(ctx context.Context, source string) (*Result, error) {
	switch {
	case source == StdinSource:
		return s.Parse(s.stdin)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return s.Fetch(ctx, source)
	default:
		return s.ParseFile(source)
	}
}

// Fetch downloads and parses a schedule page
func (s *Scraper) Fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.Parse(resp.Body)
}

// ParseFile parses a schedule page stored on disk
func (s *Scraper) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return s.Parse(f)
}

// Parse parses a schedule page from r
func (s *Scraper) Parse(r io.Reader) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return s.Extract(doc)
}

// Extract walks the top-level blocks of doc in order and collects their events
func (s *Scraper) Extract(doc *goquery.Document) (*Result, error) {
	started := time.Now()
	defer func() {
		logger.RecordTiming("extract", time.Since(started))
	}()

	blocks := doc.Find(blockSelector)
	if blocks.Length() == 0 {
		logger.Warn("No content blocks found", logger.Fields{"selector": blockSelector})
	}

	result := &Result{Events: make([]*event.Event, 0)}
	var cur Cursor

	for i := range blocks.Nodes {
		block := blocks.Eq(i)

		next, group, err := s.Step(cur, block)
		if err != nil {
			err = fmt.Errorf("block %d: %w", i, err)
			if !s.lenient {
				return nil, err
			}

			logger.Error("Skipping block", logger.Fields{"block": outerHTML(block)}, err)
			result.Skipped = append(result.Skipped, err)
		}
		cur = next

		if group.DateMarker {
			result.DateBlocks++
			continue
		}
		result.GroupBlocks++

		result.Events = append(result.Events, group.Events...)
		for _, skipped := range group.Skipped {
			result.Skipped = append(result.Skipped, skipped)
		}
	}

	assignUniqueIDs(result.Events)

	logger.Info("Extracted events", logger.Fields{
		"events":       len(result.Events),
		"skipped":      len(result.Skipped),
		"date_blocks":  result.DateBlocks,
		"group_blocks": result.GroupBlocks,
	})

	return result, nil
}

// assignUniqueIDs suffixes the IDs of repeated events with their occurrence
// number so every event keeps its own calendar UID
func assignUniqueIDs(events []*event.Event) {
	seen := make(map[string]int, len(events))
	for _, evt := range events {
		seen[evt.ID]++
		if n := seen[evt.ID]; n > 1 {
			evt.ID = fmt.Sprintf("%s-%d", evt.ID, n)
		}
	}
}
