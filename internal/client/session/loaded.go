package session

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loaded caches the result of an expensive fetch until it is explicitly
// invalidated. Concurrent loads share one fetch. A fetch that completes
// after Set or Invalidate was called is discarded and reported as
// ErrInvalidated.
//
// The zero value is ready to use.
type Loaded[T any] struct {
	mu    sync.Mutex
	value T
	ok    bool
	epoch uint64
	group singleflight.Group
}

// Peek returns the cached value without fetching.
func (l *Loaded[T]) Peek() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.ok
}

func (l *Loaded[T]) Set(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value, l.ok = v, true
	l.epoch++
}

func (l *Loaded[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value, l.ok = zero, false
	l.epoch++
}

// Get returns the cached value, fetching it first if there is none.
func (l *Loaded[T]) Get(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := l.Peek(); ok {
		return v, nil
	}
	return l.load(ctx, fetch)
}

// ForceRefresh fetches even when a value is cached and replaces it.
func (l *Loaded[T]) ForceRefresh(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	return l.load(ctx, fetch)
}

func (l *Loaded[T]) load(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	epoch := l.epoch
	l.mu.Unlock()

	// Flights are keyed by epoch so a load started after Set or Invalidate
	// never joins one whose result will be discarded.
	res, err, _ := l.group.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.epoch != epoch {
			return v, ErrInvalidated
		}
		l.value, l.ok = v, true
		return v, nil
	})

	v, _ := res.(T)
	return v, err
}
