package domain

import (
	"fmt"
	"strings"
	"time"
)

type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// weekdayCodes is indexed by time.Weekday, so 0 is Sunday.
var weekdayCodes = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// orderedWeekdays is the canonical output order of a WeekdaySet.
var orderedWeekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a time.Weekday ordinal to its code.
func WeekdayOf(d time.Weekday) Weekday {
	return weekdayCodes[int(d)%7]
}

// ParseWeekday accepts a code in any letter case.
func ParseWeekday(value string) (Weekday, bool) {
	code := Weekday(strings.ToUpper(strings.TrimSpace(value)))
	for _, w := range weekdayCodes {
		if w == code {
			return w, true
		}
	}
	return "", false
}

func (w Weekday) bit() WeekdaySet {
	for i, code := range weekdayCodes {
		if code == w {
			return 1 << uint(i)
		}
	}
	return 0
}

// WeekdaySet is a set of weekday codes. The zero value is the empty set.
type WeekdaySet uint8

// WeekdaySetOf builds a set from a list of codes. Duplicates collapse.
func WeekdaySetOf(codes ...string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, raw := range codes {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		w, ok := ParseWeekday(raw)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, raw)
		}
		set = set.Add(w)
	}
	return set, nil
}

// ParseWeekdaySet parses the comma-joined storage form, e.g. "MON,SAT".
func ParseWeekdaySet(value string) (WeekdaySet, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return WeekdaySetOf(strings.Split(value, ",")...)
}

func (s WeekdaySet) Add(w Weekday) WeekdaySet {
	return s | w.bit()
}

func (s WeekdaySet) Has(w Weekday) bool {
	bit := w.bit()
	return bit != 0 && s&bit != 0
}

func (s WeekdaySet) Empty() bool {
	return s&0x7f == 0
}

// Codes returns the members in MON..SUN order.
func (s WeekdaySet) Codes() []Weekday {
	codes := make([]Weekday, 0, 7)
	for _, w := range orderedWeekdays {
		if s.Has(w) {
			codes = append(codes, w)
		}
	}
	return codes
}

// Strings is Codes as plain strings, for the wire.
func (s WeekdaySet) Strings() []string {
	codes := s.Codes()
	out := make([]string, 0, len(codes))
	for _, w := range codes {
		out = append(out, string(w))
	}
	return out
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Strings(), ",")
}
