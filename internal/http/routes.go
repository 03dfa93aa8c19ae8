package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-service.com/task-service/internal/http/middlewares"
	"task-service.com/task-service/internal/http/validators"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int, logger *slog.Logger) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))

	e.GET("/health", h.Health)

	tasks := e.Group("/tasks", middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:id", h.GetTask)
}
