package router

import "github.com/BrandonKowalski/navstack/pkg/navstack/route"

// Completion must be called exactly once when a routable finishes a
// transition. Calls after the first, or after the router gave up waiting, are
// ignored.
type Completion func()

// Routable is a navigation frame owned by the application. The router only
// calls these three methods and waits for the completion handler.
type Routable interface {
	// PushRouteSegment presents segment as a child of this frame and returns
	// the routable responsible for it.
	PushRouteSegment(segment route.Segment, animated bool, done Completion) Routable

	// PopRouteSegment dismisses the child segment. skip is empty unless the
	// segment is listed in the navigation state's skip route.
	PopRouteSegment(segment route.Segment, animated bool, skip route.Segment, done Completion)

	// ChangeRouteSegment replaces from with to.
	ChangeRouteSegment(from, to route.Segment, animated bool, done Completion)
}

// RoutableFuncs adapts plain functions to Routable. Nil functions complete
// immediately; a nil OnPush returns the receiver as the child routable.
type RoutableFuncs struct {
	OnPush   func(segment route.Segment, animated bool, done Completion) Routable
	OnPop    func(segment route.Segment, animated bool, skip route.Segment, done Completion)
	OnChange func(from, to route.Segment, animated bool, done Completion)
}

func (f *RoutableFuncs) PushRouteSegment(segment route.Segment, animated bool, done Completion) Routable {
	if f.OnPush == nil {
		done()
		return f
	}
	return f.OnPush(segment, animated, done)
}

func (f *RoutableFuncs) PopRouteSegment(segment route.Segment, animated bool, skip route.Segment, done Completion) {
	if f.OnPop == nil {
		done()
		return
	}
	f.OnPop(segment, animated, skip, done)
}

func (f *RoutableFuncs) ChangeRouteSegment(from, to route.Segment, animated bool, done Completion) {
	if f.OnChange == nil {
		done()
		return
	}
	f.OnChange(from, to, animated, done)
}
