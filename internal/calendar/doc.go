// Package calendar writes extracted events as an iCalendar (RFC 5545) file and
// reads such files back for verification.
//
// Writing uses github.com/arran4/golang-ical. Reading uses the independent
// github.com/emersion/go-ical decoder, so a successful Verify shows the file is
// understood by a second implementation and not only by the one that wrote it.
package calendar
