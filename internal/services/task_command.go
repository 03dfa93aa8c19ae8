package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "task-service.com/task-service/internal/errors"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

var ErrTaskIDNotGenerated = errors.New("task id was not generated")

type TaskCommandUseCase struct {
	tasks ports.TaskRepository
	tx    ports.TransactionManager
	queue ports.TaskQueue
}

func NewTaskCommandUseCase(
	tasks ports.TaskRepository,
	tx ports.TransactionManager,
	queue ports.TaskQueue,
) *TaskCommandUseCase {
	return &TaskCommandUseCase{
		tasks: tasks,
		tx:    tx,
		queue: queue,
	}
}

// CreateTask stores a new task and hands its id to the queue. The row is
// committed only after the queue accepted the id; if the queue refuses,
// the insert is rolled back and ErrQueueUnavailable is returned.
func (uc *TaskCommandUseCase) CreateTask(ctx context.Context, title string) (*model.Task, error) {
	task, err := model.NewTask(title)
	if err != nil {
		return nil, err
	}

	created, err := uc.tasks.Add(ctx, task)
	if err != nil {
		uc.rollback(ctx, 0)
		return nil, fmt.Errorf("add task: %w", err)
	}

	if err := uc.tx.Flush(ctx); err != nil {
		uc.rollback(ctx, 0)
		return nil, fmt.Errorf("flush task: %w", err)
	}

	if !created.IsPersisted() {
		uc.rollback(ctx, 0)
		return nil, ErrTaskIDNotGenerated
	}

	if err := uc.queue.Enqueue(ctx, created.ID); err != nil {
		slog.Warn("enqueue failed, rolling back task", "task_id", created.ID, "error", err)
		uc.rollback(ctx, created.ID)
		return nil, apperrors.Wrap(apperrors.ErrQueueUnavailable, err)
	}

	if err := uc.tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit task %d: %w", created.ID, err)
	}

	return created, nil
}

func (uc *TaskCommandUseCase) rollback(ctx context.Context, taskID int64) {
	if err := uc.tx.Rollback(ctx); err != nil {
		slog.Error("rollback failed", "task_id", taskID, "error", err)
	}
}
