package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"taskplanner/internal/core/ports"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
)

const taskColumns = `id, user_id, title, description, status, priority, work_date, repeat_days,
  due_date, reminder_time, created_at, updated_at`

const listTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = ?
ORDER BY
  CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END,
  id;
`

const getTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = ? AND user_id = ?;
`

const insertTaskQuery = `
INSERT INTO tasks (user_id, title, description, status, priority, work_date, repeat_days,
  due_date, reminder_time, created_at, updated_at)
VALUES (:user_id, :title, :description, :status, :priority, :work_date, :repeat_days,
  :due_date, :reminder_time, :created_at, :updated_at);
`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  status = :status,
  priority = :priority,
  work_date = :work_date,
  repeat_days = :repeat_days,
  due_date = :due_date,
  reminder_time = :reminder_time,
  updated_at = :updated_at
WHERE id = :id AND user_id = :user_id;
`

const deleteTaskQuery = `DELETE FROM tasks WHERE id = ? AND user_id = ?;`

type TaskRepository struct {
	db *sqlx.DB
}

// taskRow stores date-times as naive local strings so both drivers keep the wall clock
// the user entered.
type taskRow struct {
	ID           uint64         `db:"id"`
	UserID       uint64         `db:"user_id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	Status       string         `db:"status"`
	Priority     string         `db:"priority"`
	WorkDate     sql.NullString `db:"work_date"`
	RepeatDays   sql.NullString `db:"repeat_days"`
	DueDate      sql.NullString `db:"due_date"`
	ReminderTime sql.NullString `db:"reminder_time"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery, userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task %d: %w", taskID, err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	result, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task))
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("read inserted task id: %w", err)
	}

	return r.GetTask(ctx, task.UserID, uint64(id))
}

func (r *TaskRepository) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	if _, err := r.db.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToRow(task)); err != nil {
		return domain.Task{}, fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return r.GetTask(ctx, task.UserID, task.ID)
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	result, err := r.db.ExecContext(ctx, deleteTaskQuery, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.WorkDate.Valid && row.WorkDate.String != "" {
		value := row.WorkDate.String
		task.WorkDate = &value
	}

	if row.RepeatDays.Valid {
		days, err := domain.ParseWeekdaySet(row.RepeatDays.String)
		if err != nil {
			zap.L().Warn("ignoring stored repeat days", zap.Uint64("task_id", row.ID), zap.Error(err))
		}
		task.RepeatDays = days
	}

	task.DueDate = parseStoredDateTime(row.ID, "due_date", row.DueDate)
	task.ReminderTime = parseStoredDateTime(row.ID, "reminder_time", row.ReminderTime)

	return task
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:        task.ID,
		UserID:    task.UserID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		CreatedAt: task.CreatedAt.UTC(),
		UpdatedAt: task.UpdatedAt.UTC(),
	}

	if task.Description != nil {
		row.Description = sql.NullString{String: *task.Description, Valid: true}
	}
	if task.WorkDate != nil {
		row.WorkDate = sql.NullString{String: *task.WorkDate, Valid: true}
	}
	if !task.RepeatDays.Empty() {
		row.RepeatDays = sql.NullString{String: task.RepeatDays.String(), Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullString{String: calendar.FormatDateTime(*task.DueDate), Valid: true}
	}
	if task.ReminderTime != nil {
		row.ReminderTime = sql.NullString{String: calendar.FormatDateTime(*task.ReminderTime), Valid: true}
	}

	return row
}

func parseStoredDateTime(taskID uint64, column string, value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	parsed, err := calendar.ParseDateTime(value.String)
	if err != nil {
		zap.L().Warn("ignoring stored date-time", zap.Uint64("task_id", taskID), zap.String("column", column), zap.Error(err))
		return nil
	}
	return &parsed
}
