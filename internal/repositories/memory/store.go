// Package memory is an in-process task store. Conditional transitions are
// atomic under the store lock; sessions keep an undo log so Rollback can
// reverse their writes. Writes are visible to other sessions before commit.
package memory

import (
	"sort"
	"sync"
	"time"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]*model.Task
}

func New() *Store {
	return &Store{
		tasks: make(map[int64]*model.Task),
	}
}

func (s *Store) NewSession() *Session {
	return &Session{store: s}
}

func (s *Store) SessionFactory() ports.SessionFactory {
	return func() ports.Session {
		return s.NewSession()
	}
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *Store) insert(task *model.Task) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	task.ID = s.nextID
	s.tasks[task.ID] = task.Clone()
	return task.ID
}

func (s *Store) remove(id int64) {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
}

func (s *Store) get(id int64) *model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil
	}
	return task.Clone()
}

// compareAndSwap applies mutate when the stored status equals from and
// returns the previous and updated copies.
func (s *Store) compareAndSwap(
	id int64,
	from constants.TaskStatus,
	mutate func(*model.Task),
) (before, after *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.Status != from {
		return nil, nil
	}

	before = task.Clone()
	mutate(task)
	return before, task.Clone()
}

// restore puts prev back if the stored task is still in the state written
// by the transition being undone.
func (s *Store) restore(prev *model.Task, written constants.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[prev.ID]
	if ok && task.Status == written {
		s.tasks[prev.ID] = prev
	}
}

func (s *Store) snapshot(keep func(*model.Task) bool) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			items = append(items, *t.Clone())
		}
	}
	return items
}

func sortNewestFirst(items []model.Task) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func now() time.Time {
	return time.Now().UTC()
}
