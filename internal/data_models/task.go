package dto

import (
	"time"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
)

type CreateTaskRequest struct {
	Title *string `json:"title" validate:"required"`
}

type ListTasksQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=new processing done failed"`
	Page   int    `query:"page" validate:"gte=1"`
	Size   int    `query:"size" validate:"gte=1,lte=100"`
}

type TaskResponse struct {
	ID        int64                `json:"id"`
	Title     string               `json:"title"`
	Status    constants.TaskStatus `json:"status"`
	Result    *string              `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int64          `json:"total"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Result:    task.Result,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func NewTaskListResponse(tasks []model.Task, page, size int, total int64) TaskListResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, NewTaskResponse(&tasks[i]))
	}

	return TaskListResponse{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}
}
