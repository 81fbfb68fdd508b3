package router

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"go.uber.org/atomic"
)

// Stuck is called every time a routable fails to call its completion handler
// in time. It does nothing; set a breakpoint on router.Stuck to halt the
// program when the router gets stuck.
func Stuck() {}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Timeout    time.Duration // Wait for each completion handler; defaults to constants.DefaultStuckTimeout
	Dispatcher Dispatcher    // Where frame calls are issued; defaults to Inline
	OnStuck    func()        // Called after Stuck on every timeout, for telemetry
	Logger     *slog.Logger
}

// Stats counts what the executor has done so far.
type Stats struct {
	Completed int64 // Steps whose completion handler fired in time
	Stuck     int64 // Steps that timed out
	Pending   int   // Jobs queued and not yet started
}

// Executor runs routing steps strictly one at a time on a dedicated worker
// goroutine. Each step is issued through the Dispatcher, then the worker
// blocks until the routable signals completion or the timeout elapses. A
// timeout is reported and the worker moves on; nothing is retried or
// cancelled.
type Executor struct {
	timeout    time.Duration
	dispatcher Dispatcher
	onStuck    func()
	logger     *slog.Logger

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake    chan struct{}
	stopped chan struct{}

	completed atomic.Int64
	stuck     atomic.Int64
}

// NewExecutor creates an Executor and starts its worker.
func NewExecutor(opts ExecutorOptions) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = constants.DefaultStuckTimeout
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = Inline
	}
	if opts.Logger == nil {
		opts.Logger = internal.GetInternalLogger()
	}

	e := &Executor{
		timeout:    opts.Timeout,
		dispatcher: opts.Dispatcher,
		onStuck:    opts.OnStuck,
		logger:     opts.Logger,
		wake:       make(chan struct{}, 1),
		stopped:    make(chan struct{}),
	}
	go e.work()
	return e
}

// Enqueue queues one step per action. issue performs the frame call for an
// action and must hand done to the routable.
func (e *Executor) Enqueue(issue func(a Action, done Completion), actions ...Action) error {
	jobs := make([]func(), len(actions))
	for i, a := range actions {
		a := a
		jobs[i] = func() {
			e.execute(a, func(done Completion) { issue(a, done) })
		}
	}
	return e.submit(jobs...)
}

// Flush waits until every job queued before the call has run.
func (e *Executor) Flush(ctx context.Context) error {
	reached := make(chan struct{})
	if err := e.submit(func() { close(reached) }); err != nil {
		return err
	}
	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work, lets the worker drain the queue and waits for
// it to exit. A routable that never completes delays Close by the timeout
// for each remaining step.
func (e *Executor) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.signal()
	<-e.stopped
	return nil
}

// Stats returns the current counters.
func (e *Executor) Stats() Stats {
	e.mu.Lock()
	pending := len(e.queue)
	e.mu.Unlock()
	return Stats{
		Completed: e.completed.Load(),
		Stuck:     e.stuck.Load(),
		Pending:   pending,
	}
}

func (e *Executor) submit(jobs ...func()) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return navstack.ErrClosed
	}
	e.queue = append(e.queue, jobs...)
	e.mu.Unlock()
	e.signal()
	return nil
}

func (e *Executor) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Executor) work() {
	defer close(e.stopped)
	for {
		e.mu.Lock()
		for len(e.queue) == 0 {
			if e.closed {
				e.mu.Unlock()
				return
			}
			e.mu.Unlock()
			<-e.wake
			e.mu.Lock()
		}
		job := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		job()
	}
}

// execute issues one step and waits for it. Must only run on the worker.
func (e *Executor) execute(a Action, issue func(done Completion)) {
	done := make(chan struct{})
	var signaled atomic.Bool
	complete := func() {
		if signaled.CompareAndSwap(false, true) {
			close(done)
		}
	}

	e.logger.Debug("issuing routing action", "action", a.String())
	e.dispatcher.Dispatch(func() { issue(complete) })

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case <-done:
		e.completed.Inc()
	case <-timer.C:
		e.stuck.Inc()
		e.logger.Warn("router stuck waiting for completion handler",
			"action", a.String(),
			"timeout", e.timeout.String(),
			"hint", "ensure every routable calls its completion handler; break on router.Stuck to halt here")
		Stuck()
		if e.onStuck != nil {
			e.onStuck()
		}
	}
}
