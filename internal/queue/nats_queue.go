package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// NATSQueue publishes task ids on a subject and consumes them through a
// queue group, so each message reaches one subscriber of the group.
type NATSQueue struct {
	conn    *nats.Conn
	subject string
	group   string

	mu   sync.Mutex
	sub  *nats.Subscription
	msgs chan *nats.Msg

	bufferSize int
}

func NewNATSQueue(conn *nats.Conn, subject string, bufferSize int) *NATSQueue {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &NATSQueue{
		conn:       conn,
		subject:    subject,
		group:      subject + ".workers",
		bufferSize: bufferSize,
	}
}

// Enqueue publishes and flushes so a broken connection is reported to the
// caller instead of being lost in the client buffer.
func (q *NATSQueue) Enqueue(ctx context.Context, taskID int64) error {
	if q.conn.IsClosed() {
		return ErrQueueClosed
	}

	if err := q.conn.Publish(q.subject, []byte(encodeTaskID(taskID))); err != nil {
		return fmt.Errorf("nats publish %s: %w", q.subject, err)
	}
	if err := q.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats flush %s: %w", q.subject, err)
	}
	return nil
}

func (q *NATSQueue) subscribe() (chan *nats.Msg, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.msgs != nil {
		return q.msgs, nil
	}

	msgs := make(chan *nats.Msg, q.bufferSize)
	sub, err := q.conn.ChanQueueSubscribe(q.subject, q.group, msgs)
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", q.subject, err)
	}

	q.sub = sub
	q.msgs = msgs
	return msgs, nil
}

func (q *NATSQueue) Consume(ctx context.Context) (int64, error) {
	msgs, err := q.subscribe()
	if err != nil {
		return 0, err
	}

	select {
	case msg, ok := <-msgs:
		if !ok {
			return 0, ErrQueueClosed
		}
		return decodeTaskID(string(msg.Data))
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (q *NATSQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sub == nil {
		return nil
	}
	err := q.sub.Unsubscribe()
	q.sub = nil
	return err
}
