package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	config "task-service.com/task-service/internal/configs"
	"task-service.com/task-service/internal/ports"
	"task-service.com/task-service/internal/queue"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/repositories/memory"
	"task-service.com/task-service/internal/services"
)

type transport interface {
	ports.TaskQueue
	queue.Consumer
}

// app holds the process-wide dependencies shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions ports.SessionFactory
	queue    transport
	closers  []func() error
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// bootstrap loads configuration and opens the store and queue. inProcess
// reports whether producer and workers share this process, which is the
// only setup where the in-memory drivers make sense.
func bootstrap(inProcess bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: config.NewLogger(os.Stdout, cfg.LogLevel),
	}

	if !inProcess && (cfg.DatabaseDriver == "memory" || cfg.QueueDriver == "memory") {
		return nil, errors.New("memory drivers require serve --with-worker")
	}

	if err := a.openStore(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openQueue(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) openStore() error {
	if a.cfg.DatabaseDriver == "memory" {
		a.sessions = memory.New().SessionFactory()
		return nil
	}

	db, err := config.NewDatabaseClient(a.cfg.DatabaseDriver, a.cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	a.onClose(func() error { return config.CloseDatabase(db) })
	a.sessions = repository.NewSessionFactory(db)
	return nil
}

func (a *app) openQueue() error {
	switch a.cfg.QueueDriver {
	case "redis":
		client, err := config.NewRedisClient(a.cfg.RedisAddr(), a.cfg.RedisPassword, a.cfg.RedisDB)
		if err != nil {
			return err
		}
		a.onClose(func() error { client.Close(); return nil })
		a.queue = queue.NewRedisQueue(client, a.cfg.QueueName)
	case "nats":
		conn, err := config.NewNATSConn(a.cfg.NATSURL, "task-service")
		if err != nil {
			return err
		}
		a.onClose(func() error { conn.Close(); return nil })
		q := queue.NewNATSQueue(conn, a.cfg.QueueName, a.cfg.QueueSize)
		a.onClose(q.Close)
		a.queue = q
	case "memory":
		q := queue.NewMemoryQueue(a.cfg.QueueSize)
		a.onClose(func() error { q.Close(); return nil })
		a.queue = q
	default:
		return fmt.Errorf("unsupported queue driver %q", a.cfg.QueueDriver)
	}

	a.logger.Info("queue ready", "driver", a.cfg.QueueDriver, "name", a.cfg.QueueName)
	return nil
}

func (a *app) taskService() *services.TaskService {
	return services.NewTaskService(a.sessions, a.queue, a.cfg.ProcessingDelay)
}

func (a *app) startPool(taskService *services.TaskService) *services.PoolService {
	return services.NewPoolService(a.queue, taskService, services.PoolConfig{
		Workers:             a.cfg.Workers,
		RedeliveryInterval:  a.cfg.RedeliveryInterval,
		RedeliveryAge:       a.cfg.RedeliveryAge,
		RedeliveryBatchSize: a.cfg.RedeliveryBatchSize,
	})
}

func (a *app) shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
}
