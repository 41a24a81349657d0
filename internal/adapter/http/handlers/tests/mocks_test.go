package tests

import (
	"context"

	"taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

const aliceEmail = "alice@example.com"

var alice = domain.User{ID: 7, Username: "alice", Email: aliceEmail}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) ResolveUser(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// knownAlice resolves alice and rejects every other email.
func knownAlice() *authServiceMock {
	auth := new(authServiceMock)
	auth.On("ResolveUser", mock.Anything, aliceEmail).Return(alice, nil).Maybe()
	auth.On("ResolveUser", mock.Anything, mock.Anything).Return(domain.User{}, domain.ErrUserNotFound).Maybe()
	return auth
}

func identified(auth *authServiceMock) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.RequestIDMiddleware(),
		middleware.LanguageMiddleware(),
		middleware.IdentityMiddleware(auth),
	}
}
