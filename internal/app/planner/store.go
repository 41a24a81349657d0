package planner

import (
	"sync"

	"taskplanner/internal/core/domain"
)

// Store is the client-side task cache. The collection is only ever replaced whole or one
// element at a time, keyed by id.
type Store struct {
	mu    sync.RWMutex
	tasks []domain.Task

	// Last issued generation. Fetches and local writes both take one, so a fetch that
	// started before a newer fetch or an acknowledged write is stale when it resolves.
	generation uint64
}

func NewStore() *Store {
	return &Store{}
}

// BeginFetch issues the generation a fetch must present to ReplaceAll.
func (s *Store) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// ReplaceAll swaps in a fetched collection. It returns false and leaves the cache alone
// when gen has been superseded.
func (s *Store) ReplaceAll(gen uint64, tasks []domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.tasks = append([]domain.Task(nil), tasks...)
	return true
}

// Upsert replaces the task with the same id or appends it.
func (s *Store) Upsert(task domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++

	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// Remove drops the task with id and reports whether it was cached.
func (s *Store) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id uint64) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Snapshot returns a copy of the cached tasks in fetch order.
func (s *Store) Snapshot() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Reset empties the cache and invalidates in-flight fetches.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.tasks = nil
}
