package memory

import (
	"context"
	"sync"

	"task-service.com/task-service/internal/ports"
)

type Session struct {
	store *Store

	mu   sync.Mutex
	undo []func()
}

func (s *Session) Tasks() ports.TaskRepository {
	return &taskRepository{session: s}
}

func (s *Session) record(fn func()) {
	s.mu.Lock()
	s.undo = append(s.undo, fn)
	s.mu.Unlock()
}

func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	s.undo = nil
	s.mu.Unlock()
	return nil
}

func (s *Session) Flush(ctx context.Context) error {
	return nil
}

func (s *Session) Rollback(ctx context.Context) error {
	s.mu.Lock()
	undo := s.undo
	s.undo = nil
	s.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	return nil
}

func (s *Session) Close() error {
	return s.Rollback(context.Background())
}
