package queue

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisQueue is a FIFO of task ids kept in a redis list.
type RedisQueue struct {
	client rueidis.Client
	key    string

	// pollSeconds bounds each BLPOP so Consume notices ctx cancellation.
	pollSeconds float64
}

func NewRedisQueue(client rueidis.Client, queueKey string) *RedisQueue {
	return &RedisQueue{
		client:      client,
		key:         queueKey,
		pollSeconds: 1,
	}
}

func (r *RedisQueue) Enqueue(ctx context.Context, taskID int64) error {
	cmd := r.client.B().Rpush().Key(r.key).Element(encodeTaskID(taskID)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("redis rpush %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisQueue) Consume(ctx context.Context) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		cmd := r.client.B().Blpop().Key(r.key).Timeout(r.pollSeconds).Build()
		reply, err := r.client.Do(ctx, cmd).AsStrSlice()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, fmt.Errorf("redis blpop %s: %w", r.key, err)
		}

		// BLPOP replies with [key, element].
		if len(reply) != 2 {
			return 0, fmt.Errorf("%w: unexpected reply %v", ErrMalformedDelivery, reply)
		}
		return decodeTaskID(reply[1])
	}
}

// Len reports how many deliveries are waiting.
func (r *RedisQueue) Len(ctx context.Context) (int64, error) {
	return r.client.Do(ctx, r.client.B().Llen().Key(r.key).Build()).AsInt64()
}

// Purge drops every pending delivery.
func (r *RedisQueue) Purge(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Del().Key(r.key).Build()).Error()
}
