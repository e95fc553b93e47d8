package services

import (
	"context"
	"sync"
)

// opQueue admits callers one at a time in arrival order. A caller that gives
// up while waiting keeps its place in line until its predecessor finishes,
// so later callers still run in order.
type opQueue struct {
	mu   sync.Mutex
	tail chan struct{}
}

// enter blocks until every earlier caller has left. The returned func must be
// called exactly once to let the next caller in.
func (q *opQueue) enter(ctx context.Context) (func(), error) {
	q.mu.Lock()
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.mu.Unlock()

	leave := func() { close(done) }
	if prev == nil {
		return leave, nil
	}

	select {
	case <-prev:
		return leave, nil
	case <-ctx.Done():
		go func() {
			<-prev
			close(done)
		}()
		return nil, ctx.Err()
	}
}
