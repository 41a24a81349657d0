package service

import (
	"context"
	"strings"
	"time"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/internal/core/reminder"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	clock          reminder.Clock
}

func NewTaskService(taskRepository ports.TaskRepository, clock reminder.Clock) *TaskService {
	if clock == nil {
		clock = reminder.SystemClock{}
	}
	return &TaskService{taskRepository: taskRepository, clock: clock}
}

func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx, userID)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := s.clock.Now()

	task := domain.Task{
		UserID:       input.UserID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		WorkDate:     input.WorkDate,
		RepeatDays:   input.RepeatDays,
		DueDate:      input.DueDate,
		ReminderTime: input.ReminderTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if err := validateTask(task, now, task.ReminderTime != nil); err != nil {
		return domain.Task{}, err
	}

	return s.taskRepository.CreateTask(ctx, task)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	current, err := s.taskRepository.GetTask(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.clock.Now()
	task := input.Apply(current)
	task.Title = strings.TrimSpace(task.Title)
	task.UpdatedAt = now

	if err := validateTask(task, now, input.ReminderTimeSet && input.ReminderTime != nil); err != nil {
		return domain.Task{}, err
	}

	return s.taskRepository.UpdateTask(ctx, task)
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	return s.taskRepository.DeleteTask(ctx, userID, taskID)
}

func validateTask(task domain.Task, now time.Time, reminderChanged bool) error {
	if task.WorkDate != nil && !calendar.ValidDate(*task.WorkDate) {
		return domain.ErrInvalidDate
	}
	return domain.ValidateTask(task, now, reminderChanged)
}

var _ ports.TaskService = (*TaskService)(nil)
