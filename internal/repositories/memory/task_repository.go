package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

type taskRepository struct {
	session *Session
}

func (r *taskRepository) Add(ctx context.Context, task *model.Task) (*model.Task, error) {
	id := r.session.store.insert(task)
	r.session.record(func() { r.session.store.remove(id) })
	return task, nil
}

func (r *taskRepository) Get(ctx context.Context, id int64) (*model.Task, error) {
	return r.session.store.get(id), nil
}

func (r *taskRepository) List(ctx context.Context, filter ports.ListFilter) ([]model.Task, int64, error) {
	items := r.session.store.snapshot(func(t *model.Task) bool {
		return filter.Status == nil || t.Status == *filter.Status
	})
	sortNewestFirst(items)

	total := int64(len(items))
	offset := filter.Offset()
	if offset >= len(items) {
		return []model.Task{}, total, nil
	}

	end := offset + filter.Size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

func (r *taskRepository) ClaimForProcessing(ctx context.Context, id int64) (*model.Task, error) {
	return r.transition(id, constants.StatusNew, constants.StatusProcessing, nil)
}

func (r *taskRepository) Complete(
	ctx context.Context,
	id int64,
	status constants.TaskStatus,
	result string,
) (*model.Task, error) {
	if !constants.StatusProcessing.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: processing -> %s", ports.ErrIllegalTransition, status)
	}
	return r.transition(id, constants.StatusProcessing, status, &result)
}

func (r *taskRepository) transition(
	id int64,
	from, to constants.TaskStatus,
	result *string,
) (*model.Task, error) {
	before, after := r.session.store.compareAndSwap(id, from, func(t *model.Task) {
		t.Status = to
		t.Result = result
		if ts := now(); ts.After(t.UpdatedAt) {
			t.UpdatedAt = ts
		}
	})
	if after == nil {
		return nil, nil
	}

	r.session.record(func() { r.session.store.restore(before, to) })
	return after, nil
}

func (r *taskRepository) ListUnclaimed(ctx context.Context, before time.Time, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	items := r.session.store.snapshot(func(t *model.Task) bool {
		return t.Status == constants.StatusNew && t.UpdatedAt.Before(before)
	})
	sortNewestFirst(items)

	// oldest first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
