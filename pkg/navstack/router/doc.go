// Package router reconciles navigation states against a stack of routables.
//
// A route is the path from the root to the displayed screen. Each time the
// application's navigation state changes, the router diffs the new route
// against the previous one and produces push, pop and change actions. The
// actions run one at a time on a dedicated worker: each is issued to the
// routable that owns it, and the worker waits for the routable's completion
// handler before moving on.
//
// # Basic Usage
//
//	root := &router.RoutableFuncs{
//	    OnPush: func(seg route.Segment, animated bool, done router.Completion) router.Routable {
//	        child := presentScreen(seg, animated, done) // calls done when the transition ends
//	        return child
//	    },
//	}
//
//	r := router.New(root, router.Options{})
//	defer r.Close()
//
//	r.NewState(router.NavigationState{Route: route.New("tabBar"), Animated: true})
//	r.NewState(router.NavigationState{Route: route.New("tabBar", "login"), Animated: true})
//
// # Frames
//
// The router keeps one routable per route segment plus the root routable,
// which has no segment:
//
//	route  = ["tabBar", "login"]
//	frames = [root, tabBar, login]
//
// Pushes and pops name the parent frame: pushing "login" asks the tabBar
// routable to present it, and popping it asks tabBar to dismiss it. A change
// names the frame at the diverging position.
//
// # Threading
//
// Frame calls go through a Dispatcher. Inline issues them on the worker
// goroutine; a Loop hands them to whichever goroutine runs Loop.Run, which
// is how UI toolkits that own a main thread are served. The worker blocks
// for up to Options.Timeout per action. When a routable never calls its
// completion handler the router logs a warning, calls Stuck and the
// OnStuck hook, and continues with the next action.
package router
