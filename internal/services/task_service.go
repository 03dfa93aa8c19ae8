package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/ports"
)

// TaskService opens one session per call and runs the matching use case
// inside it, the way a request scope would.
type TaskService struct {
	newSession      ports.SessionFactory
	queue           ports.TaskQueue
	processingDelay time.Duration
	processingOpts  []ProcessingOption
}

func NewTaskService(
	newSession ports.SessionFactory,
	queue ports.TaskQueue,
	processingDelay time.Duration,
	opts ...ProcessingOption,
) *TaskService {
	return &TaskService{
		newSession:      newSession,
		queue:           queue,
		processingDelay: processingDelay,
		processingOpts:  opts,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, title string) (*model.Task, error) {
	session := s.newSession()
	defer s.close(session)

	return NewTaskCommandUseCase(session.Tasks(), session, s.queue).CreateTask(ctx, title)
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	session := s.newSession()
	defer s.close(session)

	return NewTaskQueryUseCase(session.Tasks()).GetTask(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter ports.ListFilter) ([]model.Task, int64, error) {
	session := s.newSession()
	defer s.close(session)

	return NewTaskQueryUseCase(session.Tasks()).ListTasks(ctx, filter)
}

func (s *TaskService) ProcessTask(ctx context.Context, taskID int64) (*model.Task, error) {
	session := s.newSession()
	defer s.close(session)

	return NewTaskProcessingUseCase(session.Tasks(), session, s.processingDelay, s.processingOpts...).
		ProcessTask(ctx, taskID)
}

// RedeliverUnclaimed enqueues again up to limit tasks that are still new
// and were last touched more than age ago. Duplicate deliveries are
// harmless because only one of them can claim the task.
func (s *TaskService) RedeliverUnclaimed(ctx context.Context, age time.Duration, limit int) (int, error) {
	session := s.newSession()
	defer s.close(session)

	tasks, err := session.Tasks().ListUnclaimed(ctx, time.Now().UTC().Add(-age), limit)
	if err != nil {
		return 0, fmt.Errorf("list unclaimed tasks: %w", err)
	}

	redelivered := 0
	for _, task := range tasks {
		if err := s.queue.Enqueue(ctx, task.ID); err != nil {
			return redelivered, fmt.Errorf("redeliver task %d: %w", task.ID, err)
		}
		redelivered++
	}

	return redelivered, nil
}

func (s *TaskService) close(session ports.Session) {
	if err := session.Close(); err != nil {
		slog.Error("failed to close session", "error", err)
	}
}
