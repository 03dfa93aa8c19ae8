package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"task-service.com/task-service/internal/ports"
)

// Session runs repository writes inside a transaction that is opened on
// first use and ended by Commit or Rollback. Reads join the open
// transaction when there is one.
type Session struct {
	db *gorm.DB

	mu sync.Mutex
	tx *gorm.DB

	tasks *TaskRepository
}

func NewSession(db *gorm.DB) *Session {
	s := &Session{db: db}
	s.tasks = &TaskRepository{session: s}
	return s
}

func NewSessionFactory(db *gorm.DB) ports.SessionFactory {
	return func() ports.Session {
		return NewSession(db)
	}
}

func (s *Session) Tasks() ports.TaskRepository {
	return s.tasks
}

func (s *Session) writer(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		tx := s.db.Begin()
		if tx.Error != nil {
			return nil, tx.Error
		}
		s.tx = tx
	}

	return s.tx.WithContext(ctx), nil
}

func (s *Session) reader(ctx context.Context) *gorm.DB {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx != nil {
		return s.tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}

	err := s.tx.Commit().Error
	s.tx = nil
	return err
}

// Flush is a no-op: gorm sends each statement to the database as soon as
// it runs, so ids and rows are visible inside the transaction already.
func (s *Session) Flush(ctx context.Context) error {
	return nil
}

func (s *Session) Rollback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}

	err := s.tx.Rollback().Error
	s.tx = nil
	return err
}

func (s *Session) Close() error {
	return s.Rollback(context.Background())
}
