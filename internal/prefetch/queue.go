// Package prefetch runs best-effort background tasks that can be cancelled by
// key. Task failures never reach the caller.
package prefetch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

type Task func(ctx context.Context) error

// DefaultMaxPending bounds how many tasks may wait or run at once.
const DefaultMaxPending = 256

type Option func(*Queue)

// WithMaxPending caps the number of pending or running tasks. Enqueue rejects
// new keys once the cap is reached.
func WithMaxPending(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxPending = n
		}
	}
}

type entry struct {
	cancel context.CancelFunc
}

// Queue runs at most `workers` tasks at a time and holds at most maxPending
// tasks in total. A key is unique while its task is pending or running;
// enqueueing it again is a no-op.
type Queue struct {
	ctx        context.Context
	stop       context.CancelFunc
	sem        *semaphore.Weighted
	log        *zap.Logger
	wg         sync.WaitGroup
	mu         sync.Mutex
	tasks      map[string]*entry
	maxPending int
	closed     bool
}

func NewQueue(workers int, log *zap.Logger, opts ...Option) *Queue {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, stop := context.WithCancel(context.Background())
	q := &Queue{
		ctx:        ctx,
		stop:       stop,
		sem:        semaphore.NewWeighted(int64(workers)),
		log:        log,
		tasks:      map[string]*entry{},
		maxPending: DefaultMaxPending,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue schedules task under key and reports whether it was accepted. It
// refuses duplicate keys, a closed queue and a full queue.
func (q *Queue) Enqueue(key string, task Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if _, ok := q.tasks[key]; ok {
		return false
	}
	if len(q.tasks) >= q.maxPending {
		q.log.Debug("prefetch queue full", zap.String("key", key), zap.Int("pending", len(q.tasks)))
		return false
	}

	ctx, cancel := context.WithCancel(q.ctx)
	e := &entry{cancel: cancel}
	q.tasks[key] = e

	q.wg.Add(1)
	go q.run(ctx, key, e, task)
	return true
}

func (q *Queue) run(ctx context.Context, key string, e *entry, task Task) {
	defer q.wg.Done()
	defer q.forget(key, e)

	if err := q.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer q.sem.Release(1)

	if ctx.Err() != nil {
		return
	}
	if err := q.safeRun(ctx, task); err != nil {
		q.log.Debug("prefetch task failed", zap.String("key", key), zap.Error(err))
	}
}

func (q *Queue) safeRun(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}

func (q *Queue) forget(key string, e *entry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.tasks[key] == e {
		delete(q.tasks, key)
	}
	e.cancel()
}

// Cancel stops the task under key, pending or running.
func (q *Queue) Cancel(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.tasks[key]
	if !ok {
		return false
	}
	delete(q.tasks, key)
	e.cancel()
	return true
}

// CancelPrefix stops every task whose key starts with prefix and returns how
// many were stopped.
func (q *Queue) CancelPrefix(prefix string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for key, e := range q.tasks {
		if strings.HasPrefix(key, prefix) {
			delete(q.tasks, key)
			e.cancel()
			n++
		}
	}
	return n
}

// Len is the number of pending or running tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close cancels everything and waits for running tasks to return.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.stop()
	q.wg.Wait()
}
