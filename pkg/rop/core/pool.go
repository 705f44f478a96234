package core

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

var ErrPoolClosed = errors.New("core: pool closed")

// Pool runs submitted tasks on a fixed number of workers. Submit never
// blocks; tasks wait in an unbounded queue.
type Pool struct {
	queue *Queue[func()]
	wg    sync.WaitGroup
	size  int
}

// NewPool starts workers right away. workers <= 0 means runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{queue: NewQueue[func()](), size: workers}
	for range workers {
		p.wg.Go(func() {
			_ = Locomotive(context.Background(), p.queue.Out(), runTask)
		})
	}
	return p
}

func runTask(_ context.Context, task func()) error {
	task()
	return nil
}

func (p *Pool) Submit(task func()) error {
	if err := p.queue.Push(task); err != nil {
		return ErrPoolClosed
	}
	return nil
}

func (p *Pool) Size() int {
	return p.size
}

// Pending is the number of tasks not yet picked up by a worker.
func (p *Pool) Pending() int {
	return p.queue.Len()
}

// Close refuses new tasks. Queued tasks still run.
func (p *Pool) Close() {
	p.queue.Close()
}

// Wait blocks until every worker has exited, which happens once the pool
// is closed and its queue is empty.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) Shutdown() {
	p.Close()
	p.Wait()
}
