package client

import (
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

// createPayload only carries the fields that are set.
func createPayload(input domain.CreateTaskInput) map[string]any {
	body := map[string]any{
		"title":       input.Title,
		"repeat_days": input.RepeatDays.Strings(),
	}
	if input.Description != nil {
		body["description"] = *input.Description
	}
	if input.Status != "" {
		body["status"] = string(input.Status)
	}
	if input.Priority != "" {
		body["priority"] = string(input.Priority)
	}
	if input.WorkDate != nil {
		body["work_date"] = *input.WorkDate
	}
	if input.DueDate != nil {
		body["due_date"] = calendar.FormatDateTime(*input.DueDate)
	}
	if input.ReminderTime != nil {
		body["reminder_time"] = calendar.FormatDateTime(*input.ReminderTime)
	}
	return body
}

// updatePayload sends an explicit null for every field that is being cleared.
func updatePayload(input domain.UpdateTaskInput) map[string]any {
	body := map[string]any{}
	if input.Title != nil {
		body["title"] = *input.Title
	}
	if input.DescriptionSet {
		body["description"] = optionalString(input.Description)
	}
	if input.Status != nil {
		body["status"] = string(*input.Status)
	}
	if input.Priority != nil {
		body["priority"] = string(*input.Priority)
	}
	if input.WorkDateSet {
		body["work_date"] = optionalString(input.WorkDate)
	}
	if input.RepeatDays != nil {
		body["repeat_days"] = input.RepeatDays.Strings()
	}
	if input.DueDateSet {
		body["due_date"] = optionalDateTime(input.DueDate)
	}
	if input.ReminderTimeSet {
		body["reminder_time"] = optionalDateTime(input.ReminderTime)
	}
	return body
}

func optionalString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func optionalDateTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return calendar.FormatDateTime(*value)
}
