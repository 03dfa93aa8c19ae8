package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	model "task-service.com/task-service/internal/models"
	"task-service.com/task-service/internal/queue"
)

type TaskProcessor interface {
	ProcessTask(ctx context.Context, taskID int64) (*model.Task, error)
	RedeliverUnclaimed(ctx context.Context, age time.Duration, limit int) (int, error)
}

type PoolConfig struct {
	Workers int

	// RedeliveryInterval of zero disables the redelivery loop.
	RedeliveryInterval  time.Duration
	RedeliveryAge       time.Duration
	RedeliveryBatchSize int
}

// PoolService runs a fixed set of workers, each taking one delivery at a
// time from the consumer and processing it to completion.
type PoolService struct {
	id          string
	consumer    queue.Consumer
	processor   TaskProcessor
	cfg         PoolConfig
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	redeliverWG sync.WaitGroup
	errBackoff  time.Duration
}

func NewPoolService(
	consumer queue.Consumer,
	processor TaskProcessor,
	cfg PoolConfig,
) *PoolService {
	ctx, cancel := context.WithCancel(context.Background())

	p := &PoolService{
		id:         uuid.NewString(),
		consumer:   consumer,
		processor:  processor,
		cfg:        cfg,
		ctx:        ctx,
		cancel:     cancel,
		errBackoff: time.Second,
	}

	if cfg.RedeliveryInterval > 0 {
		p.redeliverWG.Add(1)
		go p.redeliverLoop()
	}

	for i := 1; i <= cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	slog.Info("worker pool started", "pool", p.id, "workers", cfg.Workers)
	return p
}

func (p *PoolService) worker(workerID int) {
	defer p.wg.Done()

	log := slog.With("pool", p.id, "worker", workerID)
	log.Debug("worker started")

	for {
		taskID, err := p.consumer.Consume(p.ctx)
		if err != nil {
			if p.ctx.Err() != nil || errors.Is(err, queue.ErrQueueClosed) {
				break
			}
			if errors.Is(err, queue.ErrMalformedDelivery) {
				log.Warn("dropping malformed delivery", "error", err)
				continue
			}
			log.Error("failed to receive delivery", "error", err)
			p.pause()
			continue
		}

		p.handleTask(log, taskID)
	}

	log.Debug("worker stopped")
}

// handleTask runs on a fresh context: a delivery taken off the queue is
// processed to the end even while the pool shuts down.
func (p *PoolService) handleTask(log *slog.Logger, taskID int64) {
	log = log.With("task_id", taskID)
	log.Info("processing task")

	task, err := p.processor.ProcessTask(context.Background(), taskID)
	if err != nil {
		log.Error("failed to process task", "error", err)
		return
	}

	if task == nil {
		log.Info("task already handled or missing, delivery ignored")
		return
	}

	log.Info("task completed", "status", task.Status)
}

func (p *PoolService) pause() {
	timer := time.NewTimer(p.errBackoff)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.ctx.Done():
	}
}

func (p *PoolService) redeliverLoop() {
	defer p.redeliverWG.Done()

	ticker := time.NewTicker(p.cfg.RedeliveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.redeliverOnce()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *PoolService) redeliverOnce() {
	n, err := p.processor.RedeliverUnclaimed(p.ctx, p.cfg.RedeliveryAge, p.cfg.RedeliveryBatchSize)
	if err != nil {
		slog.Error("redelivery failed", "pool", p.id, "redelivered", n, "error", err)
		return
	}
	if n > 0 {
		slog.Info("redelivered unclaimed tasks", "pool", p.id, "count", n)
	}
}

// Shutdown stops taking deliveries and waits for in-flight tasks until
// ctx expires.
func (p *PoolService) Shutdown(ctx context.Context) {
	p.cancel()
	p.redeliverWG.Wait()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker pool shut down cleanly", "pool", p.id)
	case <-ctx.Done():
		slog.Warn("worker pool shutdown timed out", "pool", p.id)
	}
}
