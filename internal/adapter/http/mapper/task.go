package mapper

import (
	"errors"
	"time"

	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:         task.ID,
		Title:      task.Title,
		Status:     string(task.Status),
		Priority:   string(task.Priority),
		RepeatDays: dto.RepeatDays(task.RepeatDays.Strings()),
	}

	if !task.CreatedAt.IsZero() {
		item.CreatedAt = task.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !task.UpdatedAt.IsZero() {
		item.UpdatedAt = task.UpdatedAt.UTC().Format(time.RFC3339)
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.WorkDate != nil {
		value := *task.WorkDate
		item.WorkDate = &value
	}

	if task.DueDate != nil {
		value := calendar.FormatDateTime(*task.DueDate)
		item.DueDate = &value
	}

	if task.ReminderTime != nil {
		value := calendar.FormatDateTime(*task.ReminderTime)
		item.ReminderTime = &value
	}

	return item
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// FromTaskItem maps an API payload back to a domain task. Unknown weekday codes are
// dropped and reported.
func FromTaskItem(item dto.TaskItem) (domain.Task, error) {
	task := domain.Task{
		ID:       item.ID,
		Title:    item.Title,
		Status:   domain.TaskStatus(item.Status),
		Priority: domain.TaskPriority(item.Priority),
	}

	if item.Description != nil {
		value := *item.Description
		task.Description = &value
	}
	if item.WorkDate != nil && *item.WorkDate != "" {
		value := *item.WorkDate
		task.WorkDate = &value
	}

	var errs []error
	days, err := domain.WeekdaySetOf(item.RepeatDays...)
	if err != nil {
		errs = append(errs, err)
		for _, code := range item.RepeatDays {
			if w, ok := domain.ParseWeekday(code); ok {
				days = days.Add(w)
			}
		}
	}
	task.RepeatDays = days

	if task.DueDate, err = parseOptionalDateTime(item.DueDate); err != nil {
		errs = append(errs, err)
	}
	if task.ReminderTime, err = parseOptionalDateTime(item.ReminderTime); err != nil {
		errs = append(errs, err)
	}
	if item.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
			task.CreatedAt = t
		}
	}
	if item.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, item.UpdatedAt); err == nil {
			task.UpdatedAt = t
		}
	}

	return task, errors.Join(errs...)
}

func parseOptionalDateTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := calendar.ParseDateTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FromUserItem(item dto.UserItem) domain.User {
	return domain.User{
		ID:       item.ID,
		Username: item.Username,
		Email:    item.Email,
	}
}
