package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type TaskItem struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *string    `json:"due_date"`
	WorkDate     *string    `json:"work_date"`
	RepeatDays   RepeatDays `json:"repeat_days"`
	ReminderTime *string    `json:"reminder_time"`
	CreatedAt    string     `json:"created_at,omitempty"`
	UpdatedAt    string     `json:"updated_at,omitempty"`
}

type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=65535"`
	Status       *string    `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Done'"`
	Priority     *string    `json:"priority"`
	WorkDate     *string    `json:"work_date"`
	DueDate      *string    `json:"due_date"`
	Deadline     *string    `json:"deadline"`
	ReminderTime *string    `json:"reminder_time"`
	Reminder     *string    `json:"reminder"`
	RepeatDays   RepeatDays `json:"repeat_days"`
}

type UpdateTaskRequest struct {
	Title        *string    `json:"title" binding:"omitempty,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=65535"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	WorkDate     *string    `json:"work_date"`
	DueDate      *string    `json:"due_date"`
	ReminderTime *string    `json:"reminder_time"`
	RepeatDays   RepeatDays `json:"repeat_days"`
}

// RepeatDays accepts either a comma-joined string ("MON,SAT") or a list of codes and is
// always written back as a list.
type RepeatDays []string

func (r *RepeatDays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*r = splitRepeatDays(joined)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("repeat_days must be a string or a list of strings: %w", err)
	}
	*r = list
	return nil
}

func (r RepeatDays) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}

func splitRepeatDays(joined string) RepeatDays {
	days := RepeatDays{}
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			days = append(days, part)
		}
	}
	return days
}
