package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRejectsEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})

	err := q.Enqueue(Job{ID: "1"})
	assert.Error(t, err)
}

func TestQueueProcessesJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1", Type: "work"}))

	select {
	case job := <-done:
		assert.Equal(t, "1", job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	q := NewQueue("test", func(_ context.Context, job Job) error {
		if calls.Add(1) == 1 {
			return errors.New("transient")
		}
		done <- struct{}{}
		return nil
	}, QueueConfig{RetryDelay: 10 * time.Millisecond})

	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1"}))

	select {
	case <-done:
		assert.Equal(t, int32(2), calls.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
}

func TestQueueFullBufferErrors(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("test", func(context.Context, Job) error {
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	q.Start(context.Background())
	defer q.Stop()
	// Runs before Stop, so the worker is released and Stop can join it.
	defer close(block)

	// One job occupies the worker, one fills the buffer; with the
	// handler blocked the queue must report full within a few attempts.
	deadline := time.Now().Add(2 * time.Second)
	for {
		err := q.Enqueue(Job{ID: "j"})
		if err != nil {
			assert.True(t, errors.Is(err, ErrQueueFull))
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("enqueue never reported a full buffer")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
