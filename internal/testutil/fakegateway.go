// Package testutil provides in-memory fakes of the planner's collaborators.
package testutil

import (
	"context"
	"strings"
	"sync"

	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
)

// FakeGateway is an in-memory task API for one user.
type FakeGateway struct {
	mu     sync.Mutex
	tasks  []domain.Task
	users  map[string]domain.User
	nextID uint64
	email  string

	// Calls counts every gateway call, by method name.
	Calls map[string]int

	// Error injection for testing
	ListErr     error
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	RegisterErr error
	LoginErr    error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		users:  make(map[string]domain.User),
		nextID: 1,
		Calls:  make(map[string]int),
	}
}

// AddTask seeds a task and returns it with its assigned id.
func (f *FakeGateway) AddTask(task domain.Task) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.ID = f.nextID
	f.nextID++
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	f.tasks = append(f.tasks, task)
	return task
}

// AddUser seeds an account. Its password is "secret1".
func (f *FakeGateway) AddUser(user domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[strings.ToLower(user.Email)] = user
}

func (f *FakeGateway) SetUser(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

func (f *FakeGateway) User() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *FakeGateway) Tasks() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...)
}

func (f *FakeGateway) ListTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["ListTasks"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *FakeGateway) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	f.mu.Lock()
	f.Calls["CreateTask"]++
	err := f.CreateErr
	f.mu.Unlock()
	if err != nil {
		return domain.Task{}, err
	}

	return f.AddTask(domain.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		WorkDate:     input.WorkDate,
		RepeatDays:   input.RepeatDays,
		DueDate:      input.DueDate,
		ReminderTime: input.ReminderTime,
	}), nil
}

func (f *FakeGateway) UpdateTask(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["UpdateTask"]++
	if f.UpdateErr != nil {
		return domain.Task{}, f.UpdateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i] = input.Apply(f.tasks[i])
			return f.tasks[i], nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (f *FakeGateway) DeleteTask(ctx context.Context, taskID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["DeleteTask"]++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (f *FakeGateway) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["Register"]++
	if f.RegisterErr != nil {
		return domain.User{}, f.RegisterErr
	}
	key := strings.ToLower(strings.TrimSpace(input.Email))
	if _, ok := f.users[key]; ok {
		return domain.User{}, domain.ErrEmailTaken
	}
	user := domain.User{ID: uint64(len(f.users) + 1), Username: input.Username, Email: key}
	f.users[key] = user
	return user, nil
}

func (f *FakeGateway) Login(ctx context.Context, email, password string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls["Login"]++
	if f.LoginErr != nil {
		return domain.User{}, f.LoginErr
	}
	user, ok := f.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok || password != "secret1" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// MemoryState is an in-memory session and dismissal store.
type MemoryState struct {
	mu        sync.Mutex
	email     string
	dismissed map[string][]uint64

	SaveErr error
}

func NewMemoryState() *MemoryState {
	return &MemoryState{dismissed: make(map[string][]uint64)}
}

func (m *MemoryState) LoadDismissed(ctx context.Context, key string) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint64(nil), m.dismissed[key]...), nil
}

func (m *MemoryState) SaveDismissed(ctx context.Context, key string, ids []uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.dismissed[key] = append([]uint64(nil), ids...)
	return nil
}

func (m *MemoryState) LoadSession(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, nil
}

func (m *MemoryState) SaveSession(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.email = email
	return nil
}

var (
	_ ports.TaskGateway    = (*FakeGateway)(nil)
	_ ports.AuthGateway    = (*FakeGateway)(nil)
	_ ports.DismissalStore = (*MemoryState)(nil)
	_ ports.SessionStore   = (*MemoryState)(nil)
)
