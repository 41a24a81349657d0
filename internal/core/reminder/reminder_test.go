package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskplanner/internal/core/domain"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]uint64
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]uint64{}}
}

func (s *memStore) LoadDismissed(_ context.Context, key string) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint64(nil), s.data[key]...), nil
}

func (s *memStore) SaveDismissed(_ context.Context, key string, ids []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data[key] = append([]uint64(nil), ids...)
	return nil
}

func localTime(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(value string) *time.Time {
	t := localTime(value)
	return &t
}

func TestDueReminders(t *testing.T) {
	now := localTime("2025-06-10T09:01")
	tasks := []domain.Task{
		{ID: 1, ReminderTime: timePtr("2025-06-10T09:00")},
		{ID: 2, ReminderTime: timePtr("2025-06-10T09:02")},
		{ID: 3},
		{ID: 4, ReminderTime: timePtr("2025-06-10T09:01")},
		{ID: 5, ReminderTime: timePtr("2025-06-09T18:00")},
	}

	due := DueReminders(tasks, now, NewDismissedSet(5))

	require.Len(t, due, 2)
	assert.Equal(t, uint64(1), due[0].ID)
	assert.Equal(t, uint64(4), due[1].ID)
}

func TestEvaluator_DismissHidesReminder(t *testing.T) {
	ctx := context.Background()
	clock := NewFakeClock(localTime("2025-06-10T09:01"))
	store := newMemStore()
	evaluator := NewEvaluator(store, clock)
	require.NoError(t, evaluator.SwitchUser(ctx, "ada@example.com"))

	tasks := []domain.Task{{ID: 1, Title: "Call bank", ReminderTime: timePtr("2025-06-10T09:00")}}
	require.Len(t, evaluator.Due(tasks), 1)

	require.NoError(t, evaluator.Dismiss(ctx, 1))
	assert.Empty(t, evaluator.Due(tasks))
	assert.Equal(t, []uint64{1}, store.data["dismissed_reminders_ada@example.com"])
}

func TestEvaluator_DismissIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	evaluator := NewEvaluator(store, NewFakeClock(time.Now()))

	require.NoError(t, evaluator.Dismiss(ctx, 7))
	once := evaluator.Dismissed()
	require.NoError(t, evaluator.Dismiss(ctx, 7))

	assert.Equal(t, once, evaluator.Dismissed())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, []uint64{7}, store.data[guestKey])
}

func TestEvaluator_DismissKeepsStateWhenSaveFails(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	evaluator := NewEvaluator(store, NewFakeClock(time.Now()))

	err := evaluator.Dismiss(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, evaluator.Dismissed().Has(3))
}

func TestEvaluator_SwitchUserScopesDismissals(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data[UserKey("bob@example.com")] = []uint64{2}
	evaluator := NewEvaluator(store, NewFakeClock(time.Now()))

	require.NoError(t, evaluator.SwitchUser(ctx, "ada@example.com"))
	require.NoError(t, evaluator.Dismiss(ctx, 1))

	require.NoError(t, evaluator.SwitchUser(ctx, "Bob@Example.com "))
	assert.Equal(t, []uint64{2}, evaluator.Dismissed().IDs())

	require.NoError(t, evaluator.SwitchUser(ctx, "ada@example.com"))
	assert.Equal(t, []uint64{1}, evaluator.Dismissed().IDs())
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "dismissed_reminders_guest", UserKey(""))
	assert.Equal(t, "dismissed_reminders_ada@example.com", UserKey(" ADA@example.com"))
}

func TestEvaluator_WatchReportsOnEveryTick(t *testing.T) {
	clock := NewFakeClock(localTime("2025-06-10T08:59"))
	evaluator := NewEvaluator(newMemStore(), clock)
	tasks := []domain.Task{{ID: 1, ReminderTime: timePtr("2025-06-10T09:00")}}

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	notified := make(chan []domain.Task, 4)
	done := make(chan error, 1)
	go func() {
		done <- evaluator.watch(ctx, ticks, func() []domain.Task { return tasks }, func(_ time.Time, due []domain.Task) {
			notified <- due
		})
	}()

	clock.Advance(time.Minute)
	ticks <- clock.Now()

	select {
	case due := <-notified:
		require.Len(t, due, 1)
		assert.Equal(t, uint64(1), due[0].ID)
	case <-time.After(time.Second):
		t.Fatal("no reminder was reported")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
