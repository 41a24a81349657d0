// Package planner is the client side of the task planner: it keeps the task cache in step
// with the API and derives the calendar views and due reminders from it.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskplanner/internal/core/calendar"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/internal/core/reminder"
	"taskplanner/internal/core/views"
)

var (
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidStatus      = errors.New("invalid status")
)

// Identity receives the signed-in email so the gateway can attach it to task calls.
type Identity interface {
	SetUser(email string)
}

type Deps struct {
	Tasks     ports.TaskGateway
	Auth      ports.AuthGateway
	Session   ports.SessionStore
	Identity  Identity
	Reminders *reminder.Evaluator
	Clock     reminder.Clock
}

type Planner struct {
	tasks     ports.TaskGateway
	auth      ports.AuthGateway
	session   ports.SessionStore
	identity  Identity
	reminders *reminder.Evaluator
	clock     reminder.Clock
	store     *Store

	mu          sync.Mutex
	email       string
	selectedDay string
	monthFilter views.DayFilter
}

func New(d Deps) *Planner {
	clock := d.Clock
	if clock == nil {
		clock = reminder.SystemClock{}
	}
	return &Planner{
		tasks:     d.Tasks,
		auth:      d.Auth,
		session:   d.Session,
		identity:  d.Identity,
		reminders: d.Reminders,
		clock:     clock,
		store:     NewStore(),
	}
}

func (p *Planner) Store() *Store {
	return p.store
}

// Restore signs the saved session back in without contacting the API.
func (p *Planner) Restore(ctx context.Context) error {
	email, err := p.session.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return p.switchUser(ctx, email)
}

func (p *Planner) Email() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.email
}

func (p *Planner) SignedIn() bool {
	return p.Email() != ""
}

func (p *Planner) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	return p.auth.Register(ctx, input)
}

// Login checks the credentials with the API, then persists the session and loads the
// user's dismissed reminders.
func (p *Planner) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := p.auth.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}

	signedIn := user.Email
	if signedIn == "" {
		signedIn = strings.TrimSpace(email)
	}
	if err := p.session.SaveSession(ctx, signedIn); err != nil {
		return domain.User{}, fmt.Errorf("save session: %w", err)
	}
	if err := p.switchUser(ctx, signedIn); err != nil {
		return domain.User{}, err
	}

	zap.L().Debug("signed in", zap.String("email", signedIn))
	return user, nil
}

func (p *Planner) Logout(ctx context.Context) error {
	if err := p.session.SaveSession(ctx, ""); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return p.switchUser(ctx, "")
}

func (p *Planner) switchUser(ctx context.Context, email string) error {
	if err := p.reminders.SwitchUser(ctx, email); err != nil {
		return err
	}
	p.identity.SetUser(email)
	p.store.Reset()

	p.mu.Lock()
	p.email = email
	p.mu.Unlock()
	return nil
}

// Refresh refetches the task list. It reports false when a newer fetch or write
// superseded this one and the response was dropped. On error the cache is unchanged.
func (p *Planner) Refresh(ctx context.Context) (bool, error) {
	if !p.SignedIn() {
		return false, ErrNotSignedIn
	}

	gen := p.store.BeginFetch()
	tasks, err := p.tasks.ListTasks(ctx)
	if err != nil {
		return false, err
	}

	if !p.store.ReplaceAll(gen, tasks) {
		zap.L().Debug("dropped stale task list", zap.Uint64("generation", gen))
		return false, nil
	}
	return true, nil
}

func (p *Planner) Today() string {
	return calendar.ToLocalDate(p.clock.Now())
}

// SelectedDay is the day of the day view. It defaults to today.
func (p *Planner) SelectedDay() string {
	p.mu.Lock()
	day := p.selectedDay
	p.mu.Unlock()
	if day == "" {
		return p.Today()
	}
	return day
}

func (p *Planner) SelectDay(date string) error {
	if !calendar.ValidDate(date) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	p.mu.Lock()
	p.selectedDay = date
	p.mu.Unlock()
	return nil
}

// ShiftDay moves the selected day by n days.
func (p *Planner) ShiftDay(n int) string {
	next, _ := calendar.AddDays(p.SelectedDay(), n)
	p.mu.Lock()
	p.selectedDay = next
	p.mu.Unlock()
	return next
}

// DayColumns partitions the tasks of the selected day by status.
func (p *Planner) DayColumns() views.Columns {
	return views.ColumnsForDay(p.store.Snapshot(), p.SelectedDay())
}

func (p *Planner) MonthFilter() views.DayFilter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.monthFilter
}

// ToggleMonthFilter applies a click on day in the month view.
func (p *Planner) ToggleMonthFilter(day string) views.DayFilter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.monthFilter = p.monthFilter.Toggle(day)
	return p.monthFilter
}

func (p *Planner) MonthTasks(year int, month time.Month) []domain.Task {
	return views.TasksForMonth(p.store.Snapshot(), year, month, p.MonthFilter(), p.Today())
}

func (p *Planner) MonthAgenda(year int, month time.Month) map[string][]calendar.Occurrence {
	return views.MonthAgenda(p.store.Snapshot(), year, month, p.Today())
}

// CreateTask validates locally, sends the task and caches the API's copy. work_date
// defaults to the selected day.
func (p *Planner) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if !p.SignedIn() {
		return domain.Task{}, ErrNotSignedIn
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.WorkDate == nil {
		day := p.SelectedDay()
		input.WorkDate = &day
	}
	if !calendar.ValidDate(*input.WorkDate) {
		return domain.Task{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, *input.WorkDate)
	}
	if input.Status != "" && !input.Status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, input.Status)
	}
	err := domain.ValidateSchedule(input.Title, input.DueDate, input.ReminderTime, p.clock.Now(), input.ReminderTime != nil)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := p.tasks.CreateTask(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}
	p.store.Upsert(task)
	return task, nil
}

// UpdateTask validates the merged task, sends the change and caches the API's copy.
func (p *Planner) UpdateTask(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	if !p.SignedIn() {
		return domain.Task{}, ErrNotSignedIn
	}
	if input.Empty() {
		return domain.Task{}, errors.New("nothing to update")
	}

	current, ok := p.store.Get(taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	merged := input.Apply(current)
	if merged.WorkDate != nil && !calendar.ValidDate(*merged.WorkDate) {
		return domain.Task{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, *merged.WorkDate)
	}
	if !merged.Status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, merged.Status)
	}
	reminderChanged := input.ReminderTimeSet && input.ReminderTime != nil
	if err := domain.ValidateTask(merged, p.clock.Now(), reminderChanged); err != nil {
		return domain.Task{}, err
	}

	task, err := p.tasks.UpdateTask(ctx, taskID, input)
	if err != nil {
		return domain.Task{}, err
	}
	p.store.Upsert(task)
	return task, nil
}

// ChangeStatus moves a task to another board column.
func (p *Planner) ChangeStatus(ctx context.Context, taskID uint64, status domain.TaskStatus) (domain.Task, error) {
	if !status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return p.UpdateTask(ctx, taskID, domain.UpdateTaskInput{Status: &status})
}

// DeleteTask removes a task once the user has confirmed it.
func (p *Planner) DeleteTask(ctx context.Context, taskID uint64, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if !p.SignedIn() {
		return ErrNotSignedIn
	}

	if err := p.tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	p.store.Remove(taskID)
	return nil
}

func (p *Planner) DueReminders() []domain.Task {
	return p.reminders.Due(p.store.Snapshot())
}

func (p *Planner) Dismiss(ctx context.Context, taskID uint64) error {
	return p.reminders.Dismiss(ctx, taskID)
}

// WatchReminders refreshes the cache and reports due reminders on every tick until ctx
// is done. A failed refresh keeps the last known tasks.
func (p *Planner) WatchReminders(ctx context.Context, interval time.Duration, notify func(now time.Time, due []domain.Task)) error {
	return p.reminders.Run(ctx, interval, func() []domain.Task {
		if _, err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
			zap.L().Warn("refresh failed", zap.Error(err))
		}
		return p.store.Snapshot()
	}, notify)
}
