package queue

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when TEST_REDIS_ADDR is set.
func newTestRedisQueue(t *testing.T) *RedisQueue {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	q := NewRedisQueue(client, "test_tasks_"+uuid.NewString())
	t.Cleanup(func() { _ = q.Purge(context.Background()) })
	return q
}

func TestRedisQueue_EnqueueConsume(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 11))
	require.NoError(t, q.Enqueue(ctx, 12))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	first, err := q.Consume(ctx)
	require.NoError(t, err)
	second, err := q.Consume(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int64{11, 12}, []int64{first, second})
}

func TestRedisQueue_ConsumeStopsOnCancel(t *testing.T) {
	q := newTestRedisQueue(t)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	_, err := q.Consume(ctx)
	assert.Error(t, err)
}
