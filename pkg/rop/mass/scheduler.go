package mass

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/chain"
	"github.com/ib-77/ropchain/pkg/rop/core"
	"github.com/ib-77/ropchain/pkg/rop/step"
)

var (
	ErrSchedulerTerminated = errors.New("mass: scheduler terminated")
	ErrWorkAbandoned       = errors.New("mass: work abandoned at shutdown")
)

// notice is one terminal outcome waiting for the observer.
type notice struct {
	id  uuid.UUID
	res rop.Result[any]
}

// completion is one executed hop waiting to be routed.
type completion struct {
	id  uuid.UUID
	in  core.Input
	res rop.Result[core.Output]
}

// Scheduler executes hops on one pool and routes their outcomes on
// another. The caller only submits; results are observed through
// LastResult, ErrorCount and WithObserver.
type Scheduler struct {
	log     *zap.Logger
	observe func(uuid.UUID, rop.Result[any])
	onFault func(any)

	exec        *core.Pool
	completions *core.Queue[completion]
	drains      errgroup.Group
	stopDrains  context.CancelFunc

	inflight  *tracker
	notices   *tracker
	outbox    *core.Queue[notice]
	state     atomic.Int32
	errCount  atomic.Int64
	abandoned atomic.Int64
	last      atomic.Pointer[rop.Result[any]]

	shutdownOnce sync.Once
	shutdownErr  error
	terminated   chan struct{}
}

// New starts both pools. executionWorkers <= 0 means runtime.NumCPU();
// drainWorkers must be at least 1.
func New(executionWorkers, drainWorkers int, opts ...Option) (*Scheduler, error) {
	if drainWorkers < 1 {
		return nil, fmt.Errorf("%w: drain workers must be at least 1, got %d", ErrInvalidConfig, drainWorkers)
	}

	s := &Scheduler{
		log:         zap.NewNop(),
		completions: core.NewQueue[completion](),
		inflight:    newTracker(),
		notices:     newTracker(),
		outbox:      core.NewQueue[notice](),
		terminated:  make(chan struct{}),
	}
	s.state.Store(int32(Created))
	for _, opt := range opts {
		opt(s)
	}

	s.exec = core.NewPool(executionWorkers)
	go s.notify()

	ctx, cancel := context.WithCancel(context.Background())
	s.stopDrains = cancel
	for i := range drainWorkers {
		s.drains.Go(func() error {
			s.drain(ctx, i)
			return nil
		})
	}

	s.state.Store(int32(Running))
	s.log.Info("scheduler started",
		zap.Int("execution_workers", s.exec.Size()),
		zap.Int("drain_workers", drainWorkers))
	return s, nil
}

// State reports where the scheduler is in its lifecycle.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// ErrorCount is the number of branches that ended in a failure.
func (s *Scheduler) ErrorCount() int64 {
	return s.errCount.Load()
}

// LastResult is the most recent terminal outcome of any branch, or the
// zero Result if none has ended yet.
func (s *Scheduler) LastResult() rop.Result[any] {
	if p := s.last.Load(); p != nil {
		return *p
	}
	return rop.Result[any]{}
}

// Pending is the number of hops submitted but not yet routed.
func (s *Scheduler) Pending() int {
	return s.inflight.count()
}

// SubmitChain schedules the first hop at head and returns at once.
func (s *Scheduler) SubmitChain(head chain.Cursor, value any, extras ...any) (uuid.UUID, error) {
	if s.State() != Running {
		return uuid.Nil, ErrSchedulerTerminated
	}
	if !head.Valid() {
		return uuid.Nil, chain.ErrEmptyChain
	}

	id := uuid.New()
	if err := s.enqueue(id, core.Input{At: head, Value: value, Extras: extras}); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrSchedulerTerminated, err)
	}

	s.log.Debug("chain submitted",
		zap.Stringer("id", id), zap.Stringer("chain", head.Chain().Id()), zap.Stringer("at", head))
	return id, nil
}

func (s *Scheduler) enqueue(id uuid.UUID, in core.Input) error {
	s.inflight.add()

	err := s.exec.Submit(func() {
		defer s.surface("execution")

		res := in.Call(context.Background())
		if err := s.completions.Push(completion{id: id, in: in, res: res}); err != nil {
			s.inflight.done()
		}
	})
	if err != nil {
		s.inflight.done()
		return err
	}
	return nil
}

func (s *Scheduler) drain(ctx context.Context, worker int) {
	defer s.surface("drain")

	err := core.Locomotive(ctx, s.completions.Out(), func(_ context.Context, c completion) error {
		defer s.inflight.done()
		return s.route(c)
	})

	log := s.log.With(zap.Int("worker", worker))
	switch {
	case err == nil:
		log.Info("drain worker finished")
	case errors.Is(err, context.Canceled):
		log.Info("drain worker stopped")
	case errors.Is(err, core.ErrPoolClosed):
		log.Warn("drain worker exiting, execution pool no longer accepts work")
	default:
		log.Warn("drain worker exiting", zap.Error(err))
	}
}

func (s *Scheduler) route(c completion) error {
	if !c.res.IsSuccess() {
		if next, ok := core.Forward(c.in, c.res.Err()); ok {
			s.log.Debug("failure forwarded",
				zap.Stringer("id", c.id), zap.Stringer("to", next.At), zap.Error(c.res.Err()))
			return s.continueWith(c.id, next)
		}
		s.fail(c)
		return nil
	}

	out := c.res.Result()
	if out.At.Kind() == step.Many && out.At.HasNext() {
		ins := out.Fanout()
		s.log.Debug("fan-out", zap.Stringer("id", c.id), zap.Stringer("at", out.At), zap.Int("branches", len(ins)))
		return s.continueWith(c.id, ins...)
	}

	if next, ok := out.Next(); ok {
		return s.continueWith(c.id, next)
	}

	s.record(c.id, rop.Success(out.Value))
	return nil
}

// continueWith enqueues follow-up hops. Hops the execution pool refuses are
// counted as abandoned.
func (s *Scheduler) continueWith(id uuid.UUID, ins ...core.Input) error {
	for i, in := range ins {
		if err := s.enqueue(id, in); err != nil {
			s.abandoned.Add(int64(len(ins) - i))
			return err
		}
	}
	return nil
}

func (s *Scheduler) fail(c completion) {
	s.errCount.Add(1)

	fields := []zap.Field{
		zap.Stringer("id", c.id),
		zap.Stringer("chain", c.in.At.Chain().Id()),
		zap.Error(c.res.Err()),
	}
	var f *core.Failure
	if errors.As(c.res.Err(), &f) {
		fields = append(fields, zap.String("step", f.Name), zap.Int("index", f.Index))
	}
	s.log.Error("chain failed", fields...)

	s.record(c.id, rop.Fail[any](c.res.Err()))
}

func (s *Scheduler) record(id uuid.UUID, res rop.Result[any]) {
	s.last.Store(&res)
	if s.observe == nil {
		return
	}

	s.notices.add()
	if err := s.outbox.Push(notice{id: id, res: res}); err != nil {
		s.notices.done()
	}
}

// notify hands terminal outcomes to the observer, one at a time and in the
// order they were recorded. It runs apart from both pools so an observer
// may shut the scheduler down.
func (s *Scheduler) notify() {
	_ = core.Locomotive(context.Background(), s.outbox.Out(), func(_ context.Context, n notice) error {
		defer s.notices.done()
		defer s.surface("observer")

		s.observe(n.id, n.res)
		return nil
	})
}

// surface reports a panic and lets it continue.
func (s *Scheduler) surface(where string) {
	r := recover()
	if r == nil {
		return
	}

	s.log.Error("panic in scheduler", zap.String("where", where), zap.Any("panic", r), zap.StackSkip("stack", 1))
	if s.onFault != nil {
		s.onFault(r)
	}
	panic(r)
}

// Drain blocks until nothing is in flight and the observer has seen every
// outcome, the scheduler terminated or ctx ends.
func (s *Scheduler) Drain(ctx context.Context) error {
	for _, t := range []*tracker{s.inflight, s.notices} {
		select {
		case <-s.terminated:
			return s.shutdownErr
		default:
		}

		select {
		case <-t.idleCh():
		case <-s.terminated:
			return s.shutdownErr
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Terminated is closed once shutdown has completed.
func (s *Scheduler) Terminated() <-chan struct{} {
	return s.terminated
}

// BeginShutdown starts the shutdown sequence of Shutdown on its own
// goroutine and returns at once. Steps use it to stop the scheduler they run
// on: a step calling Shutdown would wait for its own execution worker.
func (s *Scheduler) BeginShutdown(timeout time.Duration) {
	s.shutdownOnce.Do(func() {
		s.state.Store(int32(ShuttingDown))
		go s.terminate(timeout)
	})
}

// Shutdown refuses new submissions, waits up to timeout for in-flight work,
// then stops the execution pool followed by the drain pool. Hops that could
// not run any more are reported through ErrWorkAbandoned. Later and
// concurrent calls wait for the first to finish and return its result.
//
// Observer calls still queued are delivered after Shutdown returns; use
// Drain first to wait for them. An observer may call Shutdown. A step must
// use BeginShutdown instead.
func (s *Scheduler) Shutdown(timeout time.Duration) error {
	s.BeginShutdown(timeout)
	<-s.terminated
	return s.shutdownErr
}

func (s *Scheduler) terminate(timeout time.Duration) {
	s.log.Info("scheduler shutting down", zap.Duration("timeout", timeout), zap.Int("in_flight", s.inflight.count()))

	if timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := s.inflight.wait(ctx); err != nil {
			s.log.Warn("shutdown timeout reached", zap.Int("in_flight", s.inflight.count()))
		}
		cancel()
	}

	s.exec.Close()
	s.exec.Wait()

	s.stopDrains()
	s.completions.Stop()
	_ = s.drains.Wait()
	s.outbox.Close()

	if n := s.abandoned.Load() + int64(s.inflight.count()); n > 0 {
		s.shutdownErr = fmt.Errorf("%w: %d units", ErrWorkAbandoned, n)
	}

	s.state.Store(int32(Terminated))
	close(s.terminated)
	s.log.Info("scheduler terminated", zap.Int64("errors", s.errCount.Load()))
}
