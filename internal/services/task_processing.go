package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

// Computation performs the work for a claimed task and returns the
// terminal status and result to store.
type Computation func(ctx context.Context, task *model.Task) (constants.TaskStatus, string, error)

// SimulatedWork waits for delay and then resolves the task from its title.
func SimulatedWork(delay time.Duration) Computation {
	return func(ctx context.Context, task *model.Task) (constants.TaskStatus, string, error) {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-timer.C:
			case <-ctx.Done():
				return "", "", ctx.Err()
			}
		}

		status, result := model.ResolveResult(task.Title)
		return status, result, nil
	}
}

type ProcessingOption func(*TaskProcessingUseCase)

func WithComputation(c Computation) ProcessingOption {
	return func(uc *TaskProcessingUseCase) {
		uc.compute = c
	}
}

type TaskProcessingUseCase struct {
	tasks   ports.TaskRepository
	tx      ports.TransactionManager
	compute Computation
}

func NewTaskProcessingUseCase(
	tasks ports.TaskRepository,
	tx ports.TransactionManager,
	processingDelay time.Duration,
	opts ...ProcessingOption,
) *TaskProcessingUseCase {
	uc := &TaskProcessingUseCase{
		tasks:   tasks,
		tx:      tx,
		compute: SimulatedWork(processingDelay),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessTask handles one delivery of taskID. It returns (nil, nil) when
// the task is missing or another delivery already claimed or completed it.
func (uc *TaskProcessingUseCase) ProcessTask(ctx context.Context, taskID int64) (*model.Task, error) {
	task, err := uc.tasks.ClaimForProcessing(ctx, taskID)
	if err != nil {
		uc.rollback(ctx, taskID)
		return nil, fmt.Errorf("claim task %d: %w", taskID, err)
	}

	if err := uc.tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim of task %d: %w", taskID, err)
	}

	if task == nil {
		slog.Debug("task not claimable, skipping delivery", "task_id", taskID)
		return nil, nil
	}

	// The claim is visible to everyone now; finish the task even if the
	// caller goes away.
	ctx = context.WithoutCancel(ctx)

	status, result := uc.run(ctx, task)

	updated, err := uc.tasks.Complete(ctx, taskID, status, result)
	if err != nil {
		uc.rollback(ctx, taskID)
		return nil, fmt.Errorf("complete task %d: %w", taskID, err)
	}

	if err := uc.tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit completion of task %d: %w", taskID, err)
	}

	if updated == nil {
		slog.Debug("task already completed, skipping", "task_id", taskID)
		return nil, nil
	}

	return updated, nil
}

// run never fails: errors and panics from the computation become a failed
// result.
func (uc *TaskProcessingUseCase) run(ctx context.Context, task *model.Task) (status constants.TaskStatus, result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("task computation panicked", "task_id", task.ID, "panic", r)
			status, result = constants.StatusFailed, constants.ResultError
		}
	}()

	status, result, err := uc.compute(ctx, task)
	if err != nil {
		slog.Warn("task computation failed", "task_id", task.ID, "error", err)
		return constants.StatusFailed, constants.ResultError
	}
	if !constants.StatusProcessing.CanTransitionTo(status) {
		slog.Warn("task computation returned non-terminal status", "task_id", task.ID, "status", status)
		return constants.StatusFailed, constants.ResultError
	}

	return status, result
}

func (uc *TaskProcessingUseCase) rollback(ctx context.Context, taskID int64) {
	if err := uc.tx.Rollback(ctx); err != nil {
		slog.Error("rollback failed", "task_id", taskID, "error", err)
	}
}
