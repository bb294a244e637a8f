package workers

import (
	"context"
	"log/slog"
	"sync"
)

// Pool is a fixed-size worker pool with a bounded task queue.
//
// Saturation is handled by a caller-runs policy: when the queue is full
// (or the pool is already shut down) the task executes synchronously on
// the submitting goroutine. Nothing is ever dropped; backpressure shows
// up as a blocked caller.
type Pool struct {
	name   string
	size   int
	tasks  chan func()
	logger *slog.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewPool creates a pool with the given worker count and queue depth.
// Sizes below one are clamped to one. The pool is inert until Start.
func NewPool(name string, size, queueDepth int, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		name:   name,
		size:   size,
		tasks:  make(chan func(), queueDepth),
		logger: logger.With("pool", name),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	p.logger.Debug("starting worker pool", "size", p.size, "queue", cap(p.tasks))
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues a task for asynchronous execution. If the queue is
// full or the pool is shut down, the task runs on the calling goroutine
// before Submit returns.
func (p *Pool) Submit(task func()) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		task()
		return
	}
	select {
	case p.tasks <- task:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		p.logger.Debug("pool saturated, running task on caller")
		task()
	}
}

// Shutdown stops accepting work and waits for in-flight tasks to drain.
// Returns ctx.Err if the context expires first; workers keep draining
// in the background in that case.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Debug("worker pool drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
