package queue

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the queue no longer accepts values.
var ErrClosed = errors.New("queue closed")

// Queue is an unbounded multi-producer single-consumer FIFO.
//
// Any number of goroutines may call Send concurrently; exactly one goroutine
// is expected to call Recv. Values sent by one goroutine are received in the
// order that goroutine sent them.
type Queue[T any] struct {
	mu       sync.Mutex
	ready    *sync.Cond
	items    []T
	head     int
	closed   bool // producers are done, Recv drains then reports false
	shutdown bool // consumer is gone, nothing will ever be received
}

// New creates an empty queue
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// Send appends v to the queue. It never blocks on the consumer.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || q.shutdown {
		return ErrClosed
	}

	q.items = append(q.items, v)
	q.ready.Signal()
	return nil
}

// Recv blocks until a value is available. The second result is false once the
// queue has been closed and drained, or shut down by the consumer.
func (q *Queue[T]) Recv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.head == len(q.items) && !q.closed && !q.shutdown {
		q.ready.Wait()
	}

	var zero T
	if q.shutdown || q.head == len(q.items) {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	// Reclaim the backing array once the consumer catches up
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}

	return v, true
}

// Len returns the number of values waiting to be received.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Close stops accepting new values. Values already queued are still delivered.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.ready.Broadcast()
}

// Shutdown is called by the consumer when it stops receiving. Pending values
// are dropped and every later Send fails.
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.shutdown = true
	q.items = nil
	q.head = 0
	q.ready.Broadcast()
}
