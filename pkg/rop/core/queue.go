package core

import (
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("core: queue closed")

// Queue is an unbounded FIFO. Push never blocks; values come out of Out in
// push order. There is no backpressure: a producer that outruns its
// consumers grows the queue without limit.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	signal   chan struct{}
	out      chan T
	stop     chan struct{}
	stopOnce sync.Once
}

func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{
		signal: make(chan struct{}, 1),
		out:    make(chan T),
		stop:   make(chan struct{}),
	}
	go q.relay()
	return q
}

func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.wake()
	return nil
}

// Out delivers queued values. It is closed after Close once every queued
// value went out, or right away after Stop.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close refuses further pushes. Values already queued are still delivered.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

// Stop closes the queue and drops whatever is still queued.
func (q *Queue[T]) Stop() {
	q.Close()
	q.stopOnce.Do(func() { close(q.stop) })
}

func (q *Queue[T]) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *Queue[T]) relay() {
	defer close(q.out)

	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}

			select {
			case <-q.signal:
			case <-q.stop:
				return
			}
			continue
		}

		v := q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		q.mu.Unlock()

		select {
		case q.out <- v:
		case <-q.stop:
			return
		}
	}
}
