package domain

import (
	"strings"
	"time"
)

// ValidateSchedule checks the title and reminder rules of a task about to be created or
// edited. reminderChanged limits the past-reminder check to reminders being set now, so an
// edit of an unrelated field does not fail on a reminder that has already fired.
func ValidateSchedule(title string, due, reminder *time.Time, now time.Time, reminderChanged bool) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if reminder == nil {
		return nil
	}
	if due != nil && reminder.After(*due) {
		return ErrReminderAfterDue
	}
	if reminderChanged && reminder.Before(now.Truncate(time.Minute)) {
		return ErrReminderInPast
	}
	return nil
}

// ValidateTask runs ValidateSchedule over a fully merged task.
func ValidateTask(task Task, now time.Time, reminderChanged bool) error {
	return ValidateSchedule(task.Title, task.DueDate, task.ReminderTime, now, reminderChanged)
}
