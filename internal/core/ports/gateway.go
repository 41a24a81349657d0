package ports

import (
	"context"

	"taskplanner/internal/core/domain"
)

// TaskGateway is the client side of the task REST API. Implementations attach the caller
// identity themselves.
type TaskGateway interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, taskID uint64) error
}

type AuthGateway interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}
