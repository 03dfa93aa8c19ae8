package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

type TaskRepository struct {
	session *Session
}

func (r *TaskRepository) Add(ctx context.Context, task *model.Task) (*model.Task, error) {
	db, err := r.session.writer(ctx)
	if err != nil {
		return nil, err
	}

	if err := db.Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (*model.Task, error) {
	return r.find(r.session.reader(ctx), id)
}

func (r *TaskRepository) find(db *gorm.DB, id int64) (*model.Task, error) {
	var task model.Task
	err := db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.ListFilter) ([]model.Task, int64, error) {
	db := r.session.reader(ctx)

	query := db.Model(&model.Task{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]model.Task, 0, filter.Size)
	err := query.
		Order("created_at desc").Order("id desc").
		Offset(filter.Offset()).Limit(filter.Size).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *TaskRepository) ClaimForProcessing(ctx context.Context, id int64) (*model.Task, error) {
	return r.transition(ctx, id, constants.StatusNew, map[string]interface{}{
		"status": constants.StatusProcessing,
	})
}

func (r *TaskRepository) Complete(
	ctx context.Context,
	id int64,
	status constants.TaskStatus,
	result string,
) (*model.Task, error) {
	if !constants.StatusProcessing.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: processing -> %s", ports.ErrIllegalTransition, status)
	}

	return r.transition(ctx, id, constants.StatusProcessing, map[string]interface{}{
		"status": status,
		"result": result,
	})
}

// transition applies values only when the stored status equals from.
// The WHERE clause is the concurrency guard: of any number of concurrent
// callers at most one sees a matched row.
func (r *TaskRepository) transition(
	ctx context.Context,
	id int64,
	from constants.TaskStatus,
	values map[string]interface{},
) (*model.Task, error) {
	db, err := r.session.writer(ctx)
	if err != nil {
		return nil, err
	}

	values["updated_at"] = time.Now().UTC()

	res := db.Model(&model.Task{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)

	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, nil
	}

	return r.find(db, id)
}

func (r *TaskRepository) ListUnclaimed(ctx context.Context, before time.Time, limit int) ([]model.Task, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var tasks []model.Task
	query := r.session.reader(ctx).
		Where("status = ? AND updated_at < ?", constants.StatusNew, before).
		Order("created_at asc").Limit(limit)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}
