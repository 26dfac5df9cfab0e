// Package event provides the schedule event type and the text parsers that turn
// page headings and time ranges into concrete instants.
//
// Date headings are parsed in two forms ("12 March" and "12.03.") and always take the
// year of the current run. Time ranges ("19:00" or "19:00-21:30") are combined with a
// date in a fixed location; a missing end defaults to one hour after the start and an
// end earlier than the start rolls over to the following day.
package event
