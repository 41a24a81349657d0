package cli

import (
	"strconv"
	"strings"
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

// optString is a string flag that remembers whether it was given at all.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(value string) error {
	o.value = value
	o.set = true
	return nil
}

func parseID(value string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(value, "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, usagef("invalid task id %q", value)
	}
	return id, nil
}

func parseStatus(value string) (domain.TaskStatus, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(value)) {
	case "todo":
		return domain.TaskStatusTodo, nil
	case "inprogress", "progress", "doing":
		return domain.TaskStatusInProgress, nil
	case "done":
		return domain.TaskStatusDone, nil
	}
	return "", usagef("unknown status %q (todo, progress, done)", value)
}

func parsePriority(value string) (domain.TaskPriority, error) {
	priority, ok := domain.ParseTaskPriority(value)
	if !ok {
		return "", usagef("unknown priority %q (high, medium, low)", value)
	}
	return priority, nil
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(value string) (*string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if !calendar.ValidDate(value) {
		return nil, usagef("invalid date %q (YYYY-MM-DD)", value)
	}
	return &value, nil
}

// parseOptionalDateTime returns nil for an empty value.
func parseOptionalDateTime(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := calendar.ParseDateTime(value)
	if err != nil {
		return nil, usagef("invalid date-time %q (YYYY-MM-DDTHH:MM)", value)
	}
	return &t, nil
}

func parseRepeat(value string) (domain.WeekdaySet, error) {
	days, err := domain.ParseWeekdaySet(strings.ToUpper(value))
	if err != nil {
		return 0, usagef("invalid repeat days %q (e.g. MON,SAT)", value)
	}
	return days, nil
}

// parseMonth accepts YYYY-MM and defaults to the month of today.
func parseMonth(value, today string) (int, time.Month, error) {
	if value == "" {
		value = today[:7]
	}
	t, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return 0, 0, usagef("invalid month %q (YYYY-MM)", value)
	}
	return t.Year(), t.Month(), nil
}
