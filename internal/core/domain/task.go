package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskStatuses lists the statuses in board column order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// ParseTaskPriority lower-cases and trims the input before checking it.
func ParseTaskPriority(value string) (TaskPriority, bool) {
	p := TaskPriority(strings.ToLower(strings.TrimSpace(value)))
	return p, p.Valid()
}

type Task struct {
	ID           uint64
	UserID       uint64
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	WorkDate     *string
	RepeatDays   WeekdaySet
	DueDate      *time.Time
	ReminderTime *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateTaskInput struct {
	UserID       uint64
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	WorkDate     *string
	RepeatDays   WeekdaySet
	DueDate      *time.Time
	ReminderTime *time.Time
}

// UpdateTaskInput is a partial update. A nil pointer leaves the field as is unless the
// matching *Set flag is true, in which case nil clears it.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	DescriptionSet  bool
	Status          *TaskStatus
	Priority        *TaskPriority
	WorkDate        *string
	WorkDateSet     bool
	RepeatDays      *WeekdaySet
	DueDate         *time.Time
	DueDateSet      bool
	ReminderTime    *time.Time
	ReminderTimeSet bool
}

// Empty reports whether the input carries no change at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Status == nil &&
		in.Priority == nil &&
		!in.WorkDateSet &&
		in.RepeatDays == nil &&
		!in.DueDateSet &&
		!in.ReminderTimeSet
}

// Apply returns a copy of task with the input merged in.
func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.WorkDateSet {
		task.WorkDate = in.WorkDate
	}
	if in.RepeatDays != nil {
		task.RepeatDays = *in.RepeatDays
	}
	if in.DueDateSet {
		task.DueDate = in.DueDate
	}
	if in.ReminderTimeSet {
		task.ReminderTime = in.ReminderTime
	}
	return task
}
