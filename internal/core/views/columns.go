// Package views derives the day board and the month list from a task collection.
package views

import (
	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

// Columns is the kanban board of one day.
type Columns struct {
	Todo       []domain.Task
	InProgress []domain.Task
	Done       []domain.Task
}

// Column returns the tasks of one status.
func (c Columns) Column(status domain.TaskStatus) []domain.Task {
	switch status {
	case domain.TaskStatusTodo:
		return c.Todo
	case domain.TaskStatusInProgress:
		return c.InProgress
	case domain.TaskStatusDone:
		return c.Done
	}
	return nil
}

func (c Columns) Len() int {
	return len(c.Todo) + len(c.InProgress) + len(c.Done)
}

// ColumnsForDay partitions the tasks active on date by status. Input order is kept inside
// each column. Tasks with an unknown status are left out.
func ColumnsForDay(tasks []domain.Task, date string) Columns {
	var cols Columns
	for _, task := range tasks {
		if !calendar.IsActiveOn(task, date) {
			continue
		}
		switch task.Status {
		case domain.TaskStatusTodo:
			cols.Todo = append(cols.Todo, task)
		case domain.TaskStatusInProgress:
			cols.InProgress = append(cols.InProgress, task)
		case domain.TaskStatusDone:
			cols.Done = append(cols.Done, task)
		}
	}
	return cols
}
