// Package reminder decides which task reminders are due and tracks the ones a user has
// dismissed.
package reminder

import (
	"sort"
	"time"

	"taskplanner/internal/core/domain"
)

// DismissedSet holds acknowledged task ids.
type DismissedSet map[uint64]struct{}

func NewDismissedSet(ids ...uint64) DismissedSet {
	set := make(DismissedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s DismissedSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s DismissedSet) IDs() []uint64 {
	ids := make([]uint64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s DismissedSet) clone() DismissedSet {
	out := make(DismissedSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// DueReminders keeps the tasks whose reminder time has been reached and which were not
// dismissed. Input order is kept.
func DueReminders(tasks []domain.Task, now time.Time, dismissed DismissedSet) []domain.Task {
	var due []domain.Task
	for _, task := range tasks {
		if task.ReminderTime == nil || task.ReminderTime.After(now) {
			continue
		}
		if dismissed.Has(task.ID) {
			continue
		}
		due = append(due, task)
	}
	return due
}
