// Package localstate keeps the planner's client-side state in a JSON file.
package localstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"taskplanner/internal/core/ports"
)

const fileName = "state.json"

type state struct {
	Email     string              `json:"email,omitempty"`
	Dismissed map[string][]uint64 `json:"dismissed,omitempty"`
}

// FileStore persists the session email and dismissed reminders of every user.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, fileName)}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) LoadDismissed(_ context.Context, key string) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.read()
	if err != nil {
		return nil, err
	}
	return append([]uint64(nil), st.Dismissed[key]...), nil
}

func (s *FileStore) SaveDismissed(_ context.Context, key string, ids []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return err
	}
	if st.Dismissed == nil {
		st.Dismissed = map[string][]uint64{}
	}
	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	st.Dismissed[key] = sorted
	return s.write(st)
}

func (s *FileStore) LoadSession(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.read()
	if err != nil {
		return "", err
	}
	return st.Email, nil
}

func (s *FileStore) SaveSession(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return err
	}
	st.Email = email
	return s.write(st)
}

// read returns the empty state when the file does not exist yet. Callers hold the lock.
func (s *FileStore) read() (state, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state{}, nil
		}
		return state{}, fmt.Errorf("read state: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	return st, nil
}

// write goes through a temp file and a rename.
func (s *FileStore) write(st state) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

var (
	_ ports.DismissalStore = (*FileStore)(nil)
	_ ports.SessionStore   = (*FileStore)(nil)
)
