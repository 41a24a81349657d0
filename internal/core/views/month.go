package views

import (
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

// TasksForMonth lists the distinct tasks scheduled in a month, in first-seen order. With
// the filter on, only the filter day is inspected. today is the forward-only floor for
// recurring tasks.
func TasksForMonth(tasks []domain.Task, year int, month time.Month, filter DayFilter, today string) []domain.Task {
	from, to := calendar.MonthBounds(year, month)
	if day, ok := filter.Day(); ok {
		if day < from || day > to {
			return nil
		}
		from, to = day, day
	}
	return distinct(calendar.Occurrences(tasks, from, to, today))
}

// MonthAgenda returns the per-day entries of a month, for calendar cells.
func MonthAgenda(tasks []domain.Task, year int, month time.Month, today string) map[string][]calendar.Occurrence {
	from, to := calendar.MonthBounds(year, month)
	agenda := make(map[string][]calendar.Occurrence)
	for _, occ := range calendar.Occurrences(tasks, from, to, today) {
		agenda[occ.Date] = append(agenda[occ.Date], occ)
	}
	return agenda
}

// MonthDays lists every ISO date of a month.
func MonthDays(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := make([]string, 0, 31)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		days = append(days, calendar.ToLocalDate(day))
	}
	return days
}

func distinct(occurrences []calendar.Occurrence) []domain.Task {
	seen := make(map[uint64]struct{}, len(occurrences))
	var out []domain.Task
	for _, occ := range occurrences {
		if _, ok := seen[occ.Task.ID]; ok {
			continue
		}
		seen[occ.Task.ID] = struct{}{}
		out = append(out, occ.Task)
	}
	return out
}
