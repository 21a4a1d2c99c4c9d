package prefetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueRunsTask(t *testing.T) {
	q := NewQueue(2, nil)
	defer q.Close()

	done := make(chan struct{})
	require.True(t, q.Enqueue("a", func(ctx context.Context) error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestEnqueueCoalescesPendingKey(t *testing.T) {
	q := NewQueue(1, nil)
	defer q.Close()

	release := make(chan struct{})
	require.True(t, q.Enqueue("a", func(ctx context.Context) error {
		<-release
		return nil
	}))
	assert.False(t, q.Enqueue("a", func(ctx context.Context) error { return nil }))
	close(release)
}

func TestCancelStopsPendingTask(t *testing.T) {
	q := NewQueue(1, nil)
	defer q.Close()

	block := make(chan struct{})
	defer close(block)
	started := make(chan struct{})
	require.True(t, q.Enqueue("busy", func(ctx context.Context) error {
		close(started)
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}))
	<-started

	var ran atomic.Bool
	require.True(t, q.Enqueue("waiting", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}))

	assert.True(t, q.Cancel("waiting"))
	assert.False(t, q.Cancel("waiting"))
	assert.True(t, q.Cancel("busy"))

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, ran.Load())
}

func TestCancelPrefixCancelsRunningTasks(t *testing.T) {
	q := NewQueue(4, nil)
	defer q.Close()

	var cancelled atomic.Int32
	started := make(chan struct{}, 3)
	task := func(ctx context.Context) error {
		started <- struct{}{}
		<-ctx.Done()
		cancelled.Add(1)
		return ctx.Err()
	}
	q.Enqueue("client-1|/listings", task)
	q.Enqueue("client-1|/vehicles", task)
	q.Enqueue("client-2|/listings", task)
	for i := 0; i < 3; i++ {
		<-started
	}

	assert.Equal(t, 2, q.CancelPrefix("client-1|"))
	assert.Eventually(t, func() bool { return cancelled.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, q.Len())
}

func TestFailuresAndPanicsAreSwallowed(t *testing.T) {
	q := NewQueue(2, nil)

	q.Enqueue("err", func(ctx context.Context) error { return errors.New("boom") })
	q.Enqueue("panic", func(ctx context.Context) error { panic("boom") })

	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)

	ran := make(chan struct{})
	require.True(t, q.Enqueue("after", func(ctx context.Context) error {
		close(ran)
		return nil
	}))
	<-ran
	q.Close()
}

func TestCloseRejectsNewTasks(t *testing.T) {
	q := NewQueue(1, nil)

	started := make(chan struct{})
	q.Enqueue("long", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})
	<-started

	q.Close()
	assert.False(t, q.Enqueue("late", func(ctx context.Context) error { return nil }))
	assert.Equal(t, 0, q.Len())
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	q := NewQueue(1, nil, WithMaxPending(2))
	defer q.Close()

	block := func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}
	require.True(t, q.Enqueue("client-a|/", block))
	require.True(t, q.Enqueue("client-b|/", block))
	assert.False(t, q.Enqueue("client-c|/", block))
	assert.Equal(t, 2, q.Len())

	require.True(t, q.Cancel("client-b|/"))
	assert.True(t, q.Enqueue("client-c|/", block))
}
