package router

import "github.com/BrandonKowalski/navstack/pkg/navstack/route"

// Reconcile computes the ordered actions that turn oldRoute into newRoute and
// the frame list those actions will run against. It never mutates frames and
// performs no I/O.
//
// At most one Change is emitted, at the first diverging position, followed by
// either pops (deepest first) or pushes (shallowest first). When the changed
// segment already lives deeper in the old route, the two frames are swapped in
// the returned list so the existing frame is reused.
func Reconcile(oldRoute, newRoute, skipRoute route.Route, frames []Routable) ([]Action, []Routable) {
	next := append([]Routable(nil), frames...)

	common := route.CommonPrefixLength(oldRoute, newRoute)
	if common == len(oldRoute) && common == len(newRoute) {
		return nil, next
	}

	var actions []Action

	if len(oldRoute) > common && len(newRoute) > common {
		actions = append(actions, Change{
			FrameIndex: route.FrameIndex(common),
			From:       oldRoute[common],
			To:         newRoute[common],
		})

		at := route.FrameIndex(common)
		if at < len(next) {
			if j := oldRoute.Index(newRoute[common]); j >= 0 {
				if other := route.FrameIndex(j); other < len(next) {
					next[at], next[other] = next[other], next[at]
				}
			}
		}
	}

	// Position in the routes being worked on, starting at the deepest old segment.
	pos := len(oldRoute) - 1

	for pos > len(newRoute)-1 {
		segment := oldRoute[pos]
		skip, _ := skipRoute.First(segment)
		actions = append(actions, Pop{
			FrameIndex: route.FrameIndex(pos - 1),
			Segment:    segment,
			Skip:       skip,
		})
		pos--
	}

	for pos < len(newRoute)-1 {
		actions = append(actions, Push{
			FrameIndex: route.FrameIndex(pos),
			Segment:    newRoute[pos+1],
		})
		pos++
	}

	return actions, next
}
