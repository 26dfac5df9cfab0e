// Package cli implements the command-line interface for schedule2ics.
//
// The cli package provides the Cobra-based command that resolves configuration from
// defaults, an optional YAML file and flags, runs the scraper over the input page,
// writes the calendar, optionally verifies it, and prints a text or JSON summary of
// the extracted events.
package cli
