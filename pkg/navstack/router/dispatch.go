package router

import (
	"context"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
	"go.uber.org/atomic"
)

// Dispatcher issues frame calls on the execution context the routables
// require, typically a UI thread. Implementations must run functions one at a
// time in the order they were dispatched.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Dispatch(fn func()) {
	f(fn)
}

// Inline issues frame calls directly on the router's worker goroutine.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Loop is a main-loop dispatcher: the router's worker queues frame calls and
// the goroutine that owns the frames drains them with Run.
type Loop struct {
	queue   chan func()
	running atomic.Bool
}

// NewLoop creates a Loop that buffers up to buffer pending calls before
// Dispatch blocks. A non-positive buffer uses constants.DefaultLoopBuffer.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = constants.DefaultLoopBuffer
	}
	return &Loop{queue: make(chan func(), buffer)}
}

func (l *Loop) Dispatch(fn func()) {
	l.queue <- fn
}

// Run executes dispatched calls on the calling goroutine until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.running.Store(true)
	defer l.running.Store(false)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// RunPending executes the calls already queued without waiting for more and
// returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Running reports whether a goroutine is inside Run.
func (l *Loop) Running() bool {
	return l.running.Load()
}
