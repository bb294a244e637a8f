package bus

import "context"

// Future is the read side of SendAsync. It completes exactly once.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// complete stores the outcome and releases waiters. Called once by the
// pool task; value and err are never mutated afterwards.
func (f *Future) complete(value any, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the dispatch finishes or ctx is done.
// The bus imposes no deadline of its own: callers wanting a timeout
// attach it to ctx here.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}
