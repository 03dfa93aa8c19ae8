package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"task-service.com/task-service/internal/constants"
	dto "task-service.com/task-service/internal/data_models"
	apperrors "task-service.com/task-service/internal/errors"
	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
	"task-service.com/task-service/internal/services"
)

type TaskService interface {
	CreateTask(ctx context.Context, title string) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, filter ports.ListFilter) ([]model.Task, int64, error)
}

type Handler struct {
	taskService TaskService
}

func NewHandler(taskService TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// POST /tasks
func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return newHTTPError(apperrors.ErrInvalidJSON)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), *req.Title)
	if err != nil {
		return newHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// GET /tasks/:id
func (h *Handler) GetTask(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return newHTTPError(apperrors.ErrInvalidTaskID)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return newHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// GET /tasks
func (h *Handler) ListTasks(c echo.Context) error {
	query := dto.ListTasksQuery{Page: 1, Size: services.DefaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return newHTTPError(apperrors.ErrInvalidQuery)
	}
	if err := c.Validate(&query); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	filter := ports.ListFilter{Page: query.Page, Size: query.Size}
	if query.Status != "" {
		status, err := constants.ParseTaskStatus(query.Status)
		if err != nil {
			return newHTTPError(apperrors.Wrap(apperrors.ErrInvalidQuery, err))
		}
		filter.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return newHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.NewTaskListResponse(tasks, filter.Page, filter.Size, total))
}

// newHTTPError maps application errors onto status codes. Anything that is
// not an Exception is reported as a bare 500 so internals do not leak.
func newHTTPError(err error) *echo.HTTPError {
	var exc *apperrors.Exception
	if !errors.As(err, &exc) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}

	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error()).SetInternal(err)
}
