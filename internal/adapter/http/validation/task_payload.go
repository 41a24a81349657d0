package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// FieldError ties a payload error to the JSON field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldOf returns the offending field of err, if any.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

var taskUpdateFields = []string{
	"title", "description", "status", "priority", "work_date", "due_date", "reminder_time", "repeat_days",
}

func BuildCreateTaskInput(userID uint64, req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	input := domain.CreateTaskInput{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: emptyToNil(req.Description),
	}
	if input.Title == "" {
		return domain.CreateTaskInput{}, fieldError("title", domain.ErrEmptyTitle)
	}

	for _, field := range []string{"status", "priority"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, fieldError(field, ErrInvalidTaskPayload)
		}
	}

	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
		if !input.Status.Valid() {
			return domain.CreateTaskInput{}, fieldError("status", ErrInvalidTaskPayload)
		}
	}

	if req.Priority != nil {
		priority, ok := domain.ParseTaskPriority(*req.Priority)
		if !ok {
			return domain.CreateTaskInput{}, fieldError("priority", ErrInvalidTaskPayload)
		}
		input.Priority = priority
	}

	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	input.WorkDate = workDate

	input.RepeatDays, err = domain.WeekdaySetOf(req.RepeatDays...)
	if err != nil {
		return domain.CreateTaskInput{}, fieldError("repeat_days", err)
	}

	// due_date wins over its deadline alias, reminder_time over reminder.
	dueValue, dueField := pickAlias(req.DueDate, "due_date", req.Deadline, "deadline")
	if input.DueDate, err = parseDateTime(dueValue, dueField); err != nil {
		return domain.CreateTaskInput{}, err
	}
	reminderValue, reminderField := pickAlias(req.ReminderTime, "reminder_time", req.Reminder, "reminder")
	if input.ReminderTime, err = parseDateTime(reminderValue, reminderField); err != nil {
		return domain.CreateTaskInput{}, err
	}

	return input, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, fieldError("title", domain.ErrEmptyTitle)
		}
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.UpdateTaskInput{}, fieldError("title", domain.ErrEmptyTitle)
		}
		input.Title = &title
	}

	if hasJSONField(raw, "status") {
		if req.Status == nil || !domain.TaskStatus(*req.Status).Valid() {
			return domain.UpdateTaskInput{}, fieldError("status", ErrInvalidTaskPayload)
		}
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	if hasJSONField(raw, "priority") {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, fieldError("priority", ErrInvalidTaskPayload)
		}
		priority, ok := domain.ParseTaskPriority(*req.Priority)
		if !ok {
			return domain.UpdateTaskInput{}, fieldError("priority", ErrInvalidTaskPayload)
		}
		input.Priority = &priority
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = emptyToNil(req.Description)
	}

	var err error
	if hasJSONField(raw, "work_date") {
		input.WorkDateSet = true
		if input.WorkDate, err = parseWorkDate(req.WorkDate); err != nil {
			return domain.UpdateTaskInput{}, err
		}
	}

	if hasJSONField(raw, "repeat_days") {
		days, err := domain.WeekdaySetOf(req.RepeatDays...)
		if err != nil {
			return domain.UpdateTaskInput{}, fieldError("repeat_days", err)
		}
		input.RepeatDays = &days
	}

	if hasJSONField(raw, "due_date") {
		input.DueDateSet = true
		if input.DueDate, err = parseDateTime(req.DueDate, "due_date"); err != nil {
			return domain.UpdateTaskInput{}, err
		}
	}

	if hasJSONField(raw, "reminder_time") {
		input.ReminderTimeSet = true
		if input.ReminderTime, err = parseDateTime(req.ReminderTime, "reminder_time"); err != nil {
			return domain.UpdateTaskInput{}, err
		}
	}

	return input, nil
}

func pickAlias(primary *string, primaryField string, alias *string, aliasField string) (*string, string) {
	if emptyToNil(primary) != nil || alias == nil {
		return primary, primaryField
	}
	return alias, aliasField
}

func parseWorkDate(value *string) (*string, error) {
	value = emptyToNil(value)
	if value == nil {
		return nil, nil
	}
	date := strings.TrimSpace(*value)
	if !calendar.ValidDate(date) {
		return nil, fieldError("work_date", domain.ErrInvalidDate)
	}
	return &date, nil
}

func parseDateTime(value *string, field string) (*time.Time, error) {
	value = emptyToNil(value)
	if value == nil {
		return nil, nil
	}
	t, err := calendar.ParseDateTime(strings.TrimSpace(*value))
	if err != nil {
		return nil, fieldError(field, err)
	}
	return &t, nil
}

// emptyToNil treats a blank string like an absent value.
func emptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range taskUpdateFields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
