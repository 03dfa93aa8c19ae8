package queue

import (
	"context"
	"sync"
)

// MemoryQueue is a bounded in-process queue. It only reaches consumers in
// the same process.
type MemoryQueue struct {
	mu     sync.RWMutex
	closed bool
	queue  chan int64
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{
		queue: make(chan int64, size),
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, taskID int64) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.queue <- taskID:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Consume(ctx context.Context) (int64, error) {
	select {
	case id, ok := <-q.queue:
		if !ok {
			return 0, ErrQueueClosed
		}
		return id, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (q *MemoryQueue) Len() int {
	return len(q.queue)
}

// Close stops accepting deliveries. Consumers drain what is buffered and
// then get ErrQueueClosed.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.queue)
	}
}
