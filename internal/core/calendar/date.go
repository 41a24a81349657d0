// Package calendar holds the date helpers and the recurrence rules that decide on which
// calendar days a task shows up.
package calendar

import (
	"fmt"
	"time"

	"taskplanner/internal/core/domain"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Accepted input layouts for date-times, most specific last. HTML datetime-local inputs
// send the minute form.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	DateTimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ToLocalDate formats t as YYYY-MM-DD from its own year, month and day fields. It never
// converts to UTC first, so a late-evening instant keeps its local day.
func ToLocalDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDate parses an ISO date as local midnight. ok is false for anything that is not a
// real calendar date.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate reports whether value is a well-formed ISO date.
func ValidDate(value string) bool {
	_, ok := ParseDate(value)
	return ok
}

// WeekdayCode maps an ISO date to its weekday code. ok is false for malformed input and
// callers must treat that as "never matches".
func WeekdayCode(isoDate string) (domain.Weekday, bool) {
	t, ok := ParseDate(isoDate)
	if !ok {
		return "", false
	}
	return domain.WeekdayOf(t.Weekday()), true
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(isoDate string, n int) (string, bool) {
	t, ok := ParseDate(isoDate)
	if !ok {
		return "", false
	}
	return ToLocalDate(t.AddDate(0, 0, n)), true
}

// MonthBounds returns the first and last ISO dates of a month.
func MonthBounds(year int, month time.Month) (first, last string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return ToLocalDate(start), ToLocalDate(end)
}

// ParseDateTime parses a naive local date-time or an RFC 3339 timestamp.
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
}

// FormatDateTime renders t in the naive local form used on the wire and in storage.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(DateTimeLayout)
}
