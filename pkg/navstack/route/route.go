// Package route models navigation routes: ordered paths of opaque segment
// identifiers from the root to the displayed leaf.
package route

import (
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
)

// Segment names one level of navigation. Only equality is meaningful.
type Segment string

// Route is an ordered path of segments. Routes are compared by position, never
// by set membership.
type Route []Segment

// New builds a route from segment names.
func New(segments ...string) Route {
	r := make(Route, len(segments))
	for i, s := range segments {
		r[i] = Segment(s)
	}
	return r
}

// Parse splits s on "/" into a route. Leading and trailing separators are
// ignored and the empty string is the empty route. Empty segments are rejected.
func Parse(s string) (Route, error) {
	s = strings.Trim(strings.TrimSpace(s), constants.RouteSeparator)
	if s == "" {
		return Route{}, nil
	}
	parts := strings.Split(s, constants.RouteSeparator)
	r := make(Route, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, navstack.ErrEmptySegment
		}
		r = append(r, Segment(p))
	}
	return r, nil
}

// String joins the segments with "/".
func (r Route) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = string(s)
	}
	return strings.Join(parts, constants.RouteSeparator)
}

// Strings returns the segments as plain strings.
func (r Route) Strings() []string {
	out := make([]string, len(r))
	for i, s := range r {
		out[i] = string(s)
	}
	return out
}

// Equal reports whether both routes hold the same segments in the same order.
func (r Route) Equal(other Route) bool {
	if len(r) != len(other) {
		return false
	}
	return CommonPrefixLength(r, other) == len(r)
}

// Index returns the first position of seg in r, or -1.
func (r Route) Index(seg Segment) int {
	for i, s := range r {
		if s == seg {
			return i
		}
	}
	return -1
}

// First returns the first element of r equal to seg. Skip routes are looked
// up this way, so duplicates resolve to the first match.
func (r Route) First(seg Segment) (Segment, bool) {
	if i := r.Index(seg); i >= 0 {
		return r[i], true
	}
	return "", false
}

// Clone returns a copy of r that shares no storage with it.
func (r Route) Clone() Route {
	if r == nil {
		return nil
	}
	return append(Route(nil), r...)
}

// CommonPrefixLength walks both routes from the root while the segments at the
// same position are equal. A transposition inside the prefix counts as a
// mismatch from that position on.
func CommonPrefixLength(oldRoute, newRoute Route) int {
	n := 0
	for n < len(oldRoute) && n < len(newRoute) && oldRoute[n] == newRoute[n] {
		n++
	}
	return n
}

// The root frame has no route segment, so frame lists are offset by one:
//
//	route  = ["tabBar", "login"]
//	frames = [root, tabBar, login]

// FrameIndex maps a route position to its frame registry index.
func FrameIndex(routeIndex int) int {
	return routeIndex + 1
}

// RouteIndex maps a frame registry index back to its route position. The
// root frame maps to -1.
func RouteIndex(frameIndex int) int {
	return frameIndex - 1
}
