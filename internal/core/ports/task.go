package ports

import (
	"context"

	"taskplanner/internal/core/domain"
)

type TaskRepository interface {
	ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error)
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) error
}

type TaskService interface {
	ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) error
}
