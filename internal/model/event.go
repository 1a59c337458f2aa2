package model

import (
	"strconv"
	"strings"
)

// Terms recognised by the timetable backend, in canonical lowercase form.
var Terms = []string{"michaelmas", "lent", "easter"}

// Days of the week in canonical lowercase form.
var Days = []string{
	"monday", "tuesday", "wednesday", "thursday",
	"friday", "saturday", "sunday",
}

// EventRecord holds the editable fields of a single timetable event.
// All time fields are kept as zero-padded two-digit text, and term/day are
// kept lowercase; presentation helpers title-case them without changing the
// stored values. Records are plain comparable values, so dirty checking is
// struct equality.
type EventRecord struct {
	ID          int // 0 for events not yet persisted
	Title       string
	Location    string
	Type        string
	People      string
	Week        string // integer-as-text, e.g. "3"
	Term        string // one of Terms
	Day         string // one of Days
	StartHour   string
	StartMinute string
	EndHour     string
	EndMinute   string
}

// RemoteForm maps the record onto the field names accepted by the series
// edit endpoint.
func (e EventRecord) RemoteForm() map[string]string {
	form := map[string]string{
		"title":        e.Title,
		"location":     e.Location,
		"event_type":   e.Type,
		"people":       e.People,
		"term_week":    e.Week,
		"term_name":    e.Term,
		"day_of_week":  e.Day,
		"start_hour":   e.StartHour,
		"start_minute": e.StartMinute,
		"end_hour":     e.EndHour,
		"end_minute":   e.EndMinute,
	}
	if e.ID != 0 {
		form["id"] = strconv.Itoa(e.ID)
	} else {
		form["id"] = ""
	}
	return form
}

// PrettyTerm returns the term title-cased for display.
func (e EventRecord) PrettyTerm() string {
	return TitleCase(e.Term)
}

// PrettyDay returns the day title-cased for display.
func (e EventRecord) PrettyDay() string {
	return TitleCase(e.Day)
}

// TitleCase upper-cases the first rune of s, leaving the rest untouched.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
