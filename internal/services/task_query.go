package services

import (
	"context"
	"fmt"

	apperrors "task-service.com/task-service/internal/errors"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type TaskQueryUseCase struct {
	tasks ports.TaskRepository
}

func NewTaskQueryUseCase(tasks ports.TaskRepository) *TaskQueryUseCase {
	return &TaskQueryUseCase{tasks: tasks}
}

func (uc *TaskQueryUseCase) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := uc.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if task == nil {
		return nil, apperrors.Wrapf(apperrors.ErrTaskNotFound, "task %d not found", id)
	}
	return task, nil
}

// ListTasks returns one page of tasks, newest first, and the number of
// tasks matching the filter across all pages.
func (uc *TaskQueryUseCase) ListTasks(ctx context.Context, filter ports.ListFilter) ([]model.Task, int64, error) {
	if filter.Page < 1 {
		return nil, 0, apperrors.Wrapf(apperrors.ErrInvalidQuery, "page must be at least 1")
	}
	if filter.Size < 1 || filter.Size > MaxPageSize {
		return nil, 0, apperrors.Wrapf(apperrors.ErrInvalidQuery, "size must be between 1 and %d", MaxPageSize)
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, apperrors.Wrapf(apperrors.ErrInvalidQuery, "unknown status %q", *filter.Status)
	}

	items, total, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return items, total, nil
}
