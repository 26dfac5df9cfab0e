// Package scraper loads a page-builder schedule page and extracts its events.
//
// The page is a flat sequence of content blocks. Date-marker blocks carry a heading
// such as "12 March - Spring Festival" and set the current day; event-group blocks
// hold one container per event with a heading for the title and positional
// text-editor widgets for location, time range and description. Blocks are folded
// in document order with an explicit Cursor holding the current day.
//
// Malformed event containers are logged and skipped. A date heading that cannot be
// parsed, or an event group before any date marker, stops the run unless the
// scraper is lenient.
package scraper
