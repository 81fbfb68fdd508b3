package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/featureflags"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
)

// NavigationState is the slice of application state the router observes.
type NavigationState struct {
	Route     route.Route
	SkipRoute route.Route
	Animated  bool
}

func (s NavigationState) clone() NavigationState {
	return NavigationState{
		Route:     s.Route.Clone(),
		SkipRoute: s.SkipRoute.Clone(),
		Animated:  s.Animated,
	}
}

// Options configures a Router.
type Options struct {
	Timeout    time.Duration // Wait for each completion handler; defaults to 3s
	Dispatcher Dispatcher    // Where frame calls are issued; defaults to Inline
	OnStuck    func()        // Telemetry hook for stuck routing actions
	Logger     *slog.Logger

	// DeferCommit reconciles on the worker and records the last navigation
	// state only after its batch has completed. Without it the state is
	// recorded as soon as the batch is scheduled, so a state arriving
	// mid-transition is diffed against a route not yet on screen.
	DeferCommit bool
}

// OptionsFromConfig builds Options from file config plus NAVSTACK_FEATURE_*
// environment toggles.
func OptionsFromConfig(cfg navstack.Config) (Options, error) {
	flags, err := featureflags.Resolve(cfg.Features, featureflags.EnabledFromEnv(nil))
	if err != nil {
		return Options{}, err
	}
	return Options{
		Timeout:     cfg.StuckTimeout.Duration,
		DeferCommit: flags.Enabled(featureflags.FeatureDeferredCommit),
	}, nil
}

// Router turns each new navigation state into routing actions and runs them
// against its routables.
type Router struct {
	frames      *Frames
	executor    *Executor
	logger      *slog.Logger
	deferCommit bool

	mu   sync.Mutex
	last NavigationState
}

// New creates a Router whose frame registry starts with root.
func New(root Routable, opts Options) *Router {
	if opts.Logger == nil {
		opts.Logger = internal.GetInternalLogger()
	}
	return &Router{
		frames: NewFrames(root),
		executor: NewExecutor(ExecutorOptions{
			Timeout:    opts.Timeout,
			Dispatcher: opts.Dispatcher,
			OnStuck:    opts.OnStuck,
			Logger:     opts.Logger,
		}),
		logger:      opts.Logger,
		deferCommit: opts.DeferCommit,
	}
}

// NewState reconciles state against the last navigation state and schedules
// the resulting actions. It never waits for them to run.
func (r *Router) NewState(state NavigationState) error {
	state = state.clone()

	if r.deferCommit {
		return r.executor.submit(func() { r.apply(state) })
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	actions := r.reconcile(r.last.Route, state)
	if err := r.executor.Enqueue(r.issuer(state.Animated), actions...); err != nil {
		return err
	}
	r.last = state
	return nil
}

// apply runs a whole transition on the worker and commits it afterwards.
func (r *Router) apply(state NavigationState) {
	actions := r.reconcile(r.LastState().Route, state)
	issue := r.issuer(state.Animated)
	for _, a := range actions {
		a := a
		r.executor.execute(a, func(done Completion) { issue(a, done) })
	}

	r.mu.Lock()
	r.last = state
	r.mu.Unlock()
}

func (r *Router) reconcile(from route.Route, state NavigationState) []Action {
	var actions []Action
	r.frames.update(func(current []Routable) []Routable {
		var next []Routable
		actions, next = Reconcile(from, state.Route, state.SkipRoute, current)
		return next
	})
	if len(actions) > 0 {
		r.logger.Debug("reconciled navigation state",
			"from", from.String(),
			"to", state.Route.String(),
			"actions", len(actions))
	}
	return actions
}

// issuer returns the function that performs an action's frame call. It runs
// on the dispatcher's context, and the registry bookkeeping happens there
// together with the call rather than after completion.
func (r *Router) issuer(animated bool) func(Action, Completion) {
	return func(a Action, done Completion) {
		frame, ok := r.frames.At(a.Frame())
		if !ok {
			r.logger.Error("routing action names a missing frame",
				"action", a.String(),
				"frames", r.frames.Len(),
				"error", navstack.ErrFrameOutOfRange)
			done()
			return
		}

		switch a := a.(type) {
		case Push:
			child := frame.PushRouteSegment(a.Segment, animated, done)
			if child == nil {
				r.logger.Error("routable returned no child for push",
					"action", a.String(),
					"error", fmt.Errorf("%w: nil routable for %s", navstack.ErrFrameOutOfRange, a.Segment))
				return
			}
			r.frames.Append(child)
		case Pop:
			frame.PopRouteSegment(a.Segment, animated, a.Skip, done)
			r.frames.RemoveAt(a.FrameIndex + 1)
		case Change:
			frame.ChangeRouteSegment(a.From, a.To, animated, done)
		}
	}
}

// LastState returns the most recently recorded navigation state.
func (r *Router) LastState() NavigationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.clone()
}

// Frames returns a snapshot of the frame registry, root first.
func (r *Router) Frames() []Routable {
	return r.frames.Snapshot()
}

// Stats returns the executor counters.
func (r *Router) Stats() Stats {
	return r.executor.Stats()
}

// Flush waits until every state delivered so far has been routed.
func (r *Router) Flush(ctx context.Context) error {
	return r.executor.Flush(ctx)
}

// Close drains outstanding actions and stops the worker.
func (r *Router) Close() error {
	return r.executor.Close()
}

// Subscribe feeds navigation states from a channel into the router until the
// channel is closed or ctx is done.
func (r *Router) Subscribe(ctx context.Context, states <-chan NavigationState) error {
	return SubscribeFunc(ctx, r, states, func(s NavigationState) NavigationState { return s })
}

// SubscribeFunc feeds a stream of application states into the router,
// selecting the navigation state out of each one.
func SubscribeFunc[S any](ctx context.Context, r *Router, source <-chan S, selector func(S) NavigationState) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-source:
			if !ok {
				return nil
			}
			if err := r.NewState(selector(s)); err != nil {
				return err
			}
		}
	}
}
