package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

type Publisher interface {
	Enqueue(ctx context.Context, taskID int64) error
}

// Consumer yields task ids one delivery at a time. Consume blocks until a
// delivery arrives, ctx is done, or the consumer is closed.
type Consumer interface {
	Consume(ctx context.Context) (int64, error)
}

var (
	ErrQueueFull         = errors.New("task queue is full")
	ErrQueueClosed       = errors.New("task queue is closed")
	ErrMalformedDelivery = errors.New("malformed task delivery")
)

func encodeTaskID(taskID int64) string {
	return strconv.FormatInt(taskID, 10)
}

func decodeTaskID(payload string) (int64, error) {
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDelivery, payload)
	}
	return id, nil
}
