// Package ports declares the contracts the use cases depend on. Concrete
// stores and transports live in repositories and queue.
package ports

import (
	"context"
	"errors"
	"time"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
)

var ErrIllegalTransition = errors.New("illegal task status transition")

type ListFilter struct {
	Status *constants.TaskStatus
	Page   int
	Size   int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Size
}

// TaskRepository persists tasks. Lookups and conditional transitions
// report a missing or ineligible task as (nil, nil).
type TaskRepository interface {
	Add(ctx context.Context, task *model.Task) (*model.Task, error)
	Get(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, filter ListFilter) ([]model.Task, int64, error)

	// ClaimForProcessing moves the task from new to processing in a single
	// conditional write.
	ClaimForProcessing(ctx context.Context, id int64) (*model.Task, error)

	// Complete moves the task from processing to status in a single
	// conditional write and stores result.
	Complete(ctx context.Context, id int64, status constants.TaskStatus, result string) (*model.Task, error)

	// ListUnclaimed returns tasks still in new whose last update is before
	// the given time, oldest first.
	ListUnclaimed(ctx context.Context, before time.Time, limit int) ([]model.Task, error)
}

type TaskQueue interface {
	Enqueue(ctx context.Context, taskID int64) error
}

type TransactionManager interface {
	Commit(ctx context.Context) error
	Flush(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Session is one unit of work: a transaction and the repository bound to it.
// Close rolls back anything left uncommitted.
type Session interface {
	TransactionManager
	Tasks() TaskRepository
	Close() error
}

type SessionFactory func() Session
