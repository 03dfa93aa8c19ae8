package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"task-service.com/task-service/internal/constants"
	apperrors "task-service.com/task-service/internal/errors"
)

const MaxTitleLength = 255

type Task struct {
	ID        int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string               `gorm:"size:255;not null" json:"title"`
	Status    constants.TaskStatus `gorm:"type:varchar(20);not null;default:new;index:ix_tasks_status" json:"status"`
	Result    *string              `gorm:"type:text" json:"result"`
	CreatedAt time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time            `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// NewTask builds an unsaved task in the new status. The title is trimmed
// and must be between 1 and MaxTitleLength characters.
func NewTask(title string) (*Task, error) {
	cleaned := strings.TrimSpace(title)
	if cleaned == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTitle, "title must not be empty")
	}
	if utf8.RuneCountInString(cleaned) > MaxTitleLength {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidTitle, "title must be at most %d characters", MaxTitleLength)
	}

	now := time.Now().UTC()
	return &Task{
		Title:     cleaned,
		Status:    constants.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Task) IsPersisted() bool {
	return t.ID != 0
}

// Clone returns a copy that shares no pointers with t.
func (t *Task) Clone() *Task {
	c := *t
	if t.Result != nil {
		r := *t.Result
		c.Result = &r
	}
	return &c
}
