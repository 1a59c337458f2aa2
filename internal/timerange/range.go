// Package timerange keeps a start/end time pair consistent under free-form
// numeric edits. Moving the start drags the end with it so duration is
// preserved wherever possible; the end is only forced when it would otherwise
// not be strictly after the start. Times run on a minute-of-day scale where
// 0:00-24:00 inclusive is valid, so 23:00-24:00 is representable.
package timerange

import (
	"fmt"
	"regexp"
	"strconv"
)

// DayEnd is the last representable minute of day (24:00).
const DayEnd = 24 * 60

// MinDuration is the separation forced between start and end when an edit
// would otherwise make the range empty or inverted.
const MinDuration = 60

var leadingZeros = regexp.MustCompile(`0*(\d+)`)

// ParseField parses an integer out of a field value, tolerating leading
// zeros ("05", "005"). It fails when the value contains no digits at all.
func ParseField(s string) (int, error) {
	groups := leadingZeros.FindStringSubmatch(s)
	if groups == nil {
		return 0, fmt.Errorf("no integer in %q", s)
	}
	n, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return n, nil
}

// Minutes converts an (hour, minute) pair to minutes since midnight.
func Minutes(hour, minute int) int {
	return hour*60 + minute
}

// Split converts minutes since midnight back to an (hour, minute) pair.
func Split(minutes int) (hour, minute int) {
	return minutes / 60, minutes % 60
}

// Clamp constrains a minute-of-day value to [0, DayEnd].
func Clamp(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > DayEnd {
		return DayEnd
	}
	return minutes
}

// ZeroPad renders a field value as two-digit zero-padded text.
func ZeroPad(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Adjust reconciles a start/end pair after one of its fields changed.
// oldFrom is the start before the edit, from and to are the values as now
// entered. The end moves by the same delta as the start, both ends are
// clamped into [0, DayEnd], and the end is forced MinDuration past the start
// when the edit would leave it at or before the start. The single case where
// the start itself moves is from == DayEnd, which would otherwise leave a
// zero-length range pinned at 24:00.
func Adjust(oldFrom, from, to int) (newFrom, newTo int) {
	to += from - oldFrom

	from = Clamp(from)
	to = Clamp(to)

	if to <= from {
		to = Clamp(from + MinDuration)
	}

	if to == from {
		// Only reachable when from == DayEnd.
		from = DayEnd - MinDuration
	}

	return from, to
}
