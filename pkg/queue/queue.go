// Package queue provides an unbounded FIFO queue for handing jobs between goroutines.
package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/smallnest/chanx"
)

const initialCapacity = 64

// ErrClosed is returned when sending to a closed queue or receiving from a closed and drained one.
var ErrClosed = errors.New("queue closed")

// Unbounded is a multi-producer FIFO queue without a length limit. Send never blocks on a slow consumer.
type Unbounded[T any] struct {
	ch     *chanx.UnboundedChan[T]
	mu     sync.RWMutex
	closed bool
}

// New creates a queue whose internal buffering goroutine stops when ctx is done.
func New[T any](ctx context.Context) *Unbounded[T] {
	return &Unbounded[T]{ch: chanx.NewUnboundedChan[T](ctx, initialCapacity)}
}

// Send appends item to the queue.
func (q *Unbounded[T]) Send(ctx context.Context, item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch.In <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks until an item is available, the queue is closed and drained, or ctx is done.
func (q *Unbounded[T]) Receive(ctx context.Context) (T, error) {
	var zero T
	select {
	case item, ok := <-q.ch.Out:
		if !ok {
			return zero, ErrClosed
		}
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close stops accepting items. Items already queued remain receivable.
func (q *Unbounded[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch.In)
}

// Len reports the number of queued items.
func (q *Unbounded[T]) Len() int {
	return q.ch.Len()
}
