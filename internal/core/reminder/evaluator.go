package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
)

const (
	DefaultInterval = time.Minute

	keyPrefix = "dismissed_reminders_"
	guestKey  = keyPrefix + "guest"
)

// UserKey namespaces the dismissal record of one user. An empty email maps to the guest key.
func UserKey(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return guestKey
	}
	return keyPrefix + email
}

// Evaluator surfaces due reminders for the current user.
type Evaluator struct {
	store ports.DismissalStore
	clock Clock

	mu        sync.Mutex
	key       string
	dismissed DismissedSet
}

func NewEvaluator(store ports.DismissalStore, clock Clock) *Evaluator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Evaluator{
		store:     store,
		clock:     clock,
		key:       guestKey,
		dismissed: DismissedSet{},
	}
}

// SwitchUser loads the dismissal record saved for email, or starts an empty one.
func (e *Evaluator) SwitchUser(ctx context.Context, email string) error {
	key := UserKey(email)
	ids, err := e.store.LoadDismissed(ctx, key)
	if err != nil {
		return fmt.Errorf("load dismissed reminders: %w", err)
	}

	e.mu.Lock()
	e.key = key
	e.dismissed = NewDismissedSet(ids...)
	e.mu.Unlock()
	return nil
}

// Key returns the storage key of the current user.
func (e *Evaluator) Key() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key
}

// Dismissed returns a copy of the current dismissal record.
func (e *Evaluator) Dismissed() DismissedSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dismissed.clone()
}

// Dismiss acknowledges the reminder of taskID and persists the record. Dismissing twice is
// a no-op.
func (e *Evaluator) Dismiss(ctx context.Context, taskID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dismissed.Has(taskID) {
		return nil
	}
	next := e.dismissed.clone()
	next[taskID] = struct{}{}
	if err := e.store.SaveDismissed(ctx, e.key, next.IDs()); err != nil {
		return fmt.Errorf("save dismissed reminders: %w", err)
	}
	e.dismissed = next
	return nil
}

// Due evaluates tasks against the clock.
func (e *Evaluator) Due(tasks []domain.Task) []domain.Task {
	now := e.clock.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	return DueReminders(tasks, now, e.dismissed)
}

// Run evaluates once right away and then on every tick until ctx is done. notify is only
// called when at least one reminder is due.
func (e *Evaluator) Run(ctx context.Context, interval time.Duration, tasks func() []domain.Task, notify func(now time.Time, due []domain.Task)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	return e.watch(ctx, ticker.C, tasks, notify)
}

func (e *Evaluator) watch(ctx context.Context, ticks <-chan time.Time, tasks func() []domain.Task, notify func(now time.Time, due []domain.Task)) error {
	for {
		if due := e.Due(tasks()); len(due) > 0 {
			notify(e.clock.Now(), due)
		}
		select {
		case <-ctx.Done():
			zap.L().Debug("reminder loop stopped", zap.String("key", e.Key()))
			return ctx.Err()
		case <-ticks:
		}
	}
}
