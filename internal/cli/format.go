package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

var priorityMarks = map[domain.TaskPriority]string{
	domain.TaskPriorityHigh:   "!!!",
	domain.TaskPriorityMedium: "!!",
	domain.TaskPriorityLow:    "!",
}

func formatTask(task domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %-3s %s [%s]", task.ID, priorityMarks[task.Priority], task.Title, task.Status)

	var details []string
	if task.WorkDate != nil {
		details = append(details, "on "+*task.WorkDate)
	}
	if !task.RepeatDays.Empty() {
		details = append(details, "every "+task.RepeatDays.String())
	}
	if task.DueDate != nil {
		details = append(details, "due "+shortDateTime(*task.DueDate))
	}
	if task.ReminderTime != nil {
		details = append(details, "remind "+shortDateTime(*task.ReminderTime))
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
	}
	return b.String()
}

func shortDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// printAgenda prints one line per day that has entries, recurring ones marked with "*".
func printAgenda(out io.Writer, agenda map[string][]calendar.Occurrence, days []string) {
	for _, day := range days {
		entries := agenda[day]
		if len(entries) == 0 {
			continue
		}
		labels := make([]string, 0, len(entries))
		for _, occ := range entries {
			label := fmt.Sprintf("#%d", occ.Task.ID)
			if occ.Kind == calendar.MatchRecurring {
				label += "*"
			}
			labels = append(labels, label)
		}
		fmt.Fprintf(out, "  %s  %s\n", day, strings.Join(labels, " "))
	}
}
