package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_FIFO(t *testing.T) {
	q := NewMemoryQueue(3)
	ctx := context.Background()

	for _, id := range []int64{7, 8, 9} {
		require.NoError(t, q.Enqueue(ctx, id))
	}
	assert.Equal(t, 3, q.Len())

	for _, want := range []int64{7, 8, 9} {
		got, err := q.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMemoryQueue_Full(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 1))
	assert.ErrorIs(t, q.Enqueue(ctx, 2), ErrQueueFull)
}

func TestMemoryQueue_ConsumeHonoursContext(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_CloseDrainsThenStops(t *testing.T) {
	q := NewMemoryQueue(2)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, 5))
	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Enqueue(ctx, 6), ErrQueueClosed)

	id, err := q.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = q.Consume(ctx)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestDecodeTaskID(t *testing.T) {
	id, err := decodeTaskID(encodeTaskID(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, payload := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := decodeTaskID(payload)
		assert.ErrorIs(t, err, ErrMalformedDelivery, payload)
	}
}
