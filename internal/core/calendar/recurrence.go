package calendar

import "taskplanner/internal/core/domain"

type MatchKind int

const (
	MatchExact MatchKind = iota + 1
	MatchRecurring
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchRecurring:
		return "recurring"
	}
	return "none"
}

// Occurrence is one task listed on one date.
type Occurrence struct {
	Date string
	Task domain.Task
	Kind MatchKind
}

// IsActiveOn reports whether task is scheduled on date, either as its work date or through
// one of its repeat days. No start floor applies here.
func IsActiveOn(task domain.Task, date string) bool {
	if task.WorkDate != nil && *task.WorkDate == date && ValidDate(date) {
		return true
	}
	code, ok := WeekdayCode(date)
	return ok && task.RepeatDays.Has(code)
}

// matchOn classifies a task on date for range projection. Recurring hits are forward
// only: never before today and never before the task's own work date.
func matchOn(task domain.Task, date, today string) MatchKind {
	if task.WorkDate != nil && *task.WorkDate == date {
		return MatchExact
	}
	if task.RepeatDays.Empty() || date < today {
		return 0
	}
	if task.WorkDate != nil {
		if !ValidDate(*task.WorkDate) || date < *task.WorkDate {
			return 0
		}
	}
	code, ok := WeekdayCode(date)
	if !ok || !task.RepeatDays.Has(code) {
		return 0
	}
	return MatchRecurring
}

// Occurrences projects tasks onto every date in [from, to]. The result is ordered by date,
// then by the order of tasks. Each task appears at most once per date, and an exact work
// date hit takes precedence over the recurring one. Malformed bounds yield nothing.
func Occurrences(tasks []domain.Task, from, to, today string) []Occurrence {
	start, ok := ParseDate(from)
	if !ok {
		return nil
	}
	end, ok := ParseDate(to)
	if !ok || end.Before(start) {
		return nil
	}
	if !ValidDate(today) {
		return nil
	}

	var out []Occurrence
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := ToLocalDate(day)
		for _, task := range tasks {
			if kind := matchOn(task, date, today); kind != 0 {
				out = append(out, Occurrence{Date: date, Task: task, Kind: kind})
			}
		}
	}
	return out
}
