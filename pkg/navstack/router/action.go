package router

import (
	"fmt"

	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
)

// Kind discriminates the three routing actions.
type Kind int

const (
	KindPush   Kind = iota // A new segment is pushed onto a frame
	KindPop                // A segment is removed from a frame
	KindChange             // A segment is replaced in place
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindChange:
		return "change"
	default:
		return "unknown"
	}
}

// Action is one structural step of a reconciliation. It is one of Push, Pop
// or Change.
type Action interface {
	Kind() Kind
	// Frame is the registry index of the routable responsible for the action.
	Frame() int
	String() string
	isAction()
}

// Push asks the frame at FrameIndex to present Segment as its child.
type Push struct {
	FrameIndex int
	Segment    route.Segment
}

// Pop asks the frame at FrameIndex to dismiss its child Segment. When Skip is
// set the frame should transition past the popped segment.
type Pop struct {
	FrameIndex int
	Segment    route.Segment
	Skip       route.Segment
}

// Change asks the frame at FrameIndex to replace From with To.
type Change struct {
	FrameIndex int
	From       route.Segment
	To         route.Segment
}

func (Push) Kind() Kind   { return KindPush }
func (Pop) Kind() Kind    { return KindPop }
func (Change) Kind() Kind { return KindChange }

func (a Push) Frame() int   { return a.FrameIndex }
func (a Pop) Frame() int    { return a.FrameIndex }
func (a Change) Frame() int { return a.FrameIndex }

func (Push) isAction()   {}
func (Pop) isAction()    {}
func (Change) isAction() {}

// Skipped reports whether the pop carries a skip segment.
func (a Pop) Skipped() bool {
	return a.Skip != ""
}

func (a Push) String() string {
	return fmt.Sprintf("push(frame=%d, segment=%s)", a.FrameIndex, a.Segment)
}

func (a Pop) String() string {
	if a.Skipped() {
		return fmt.Sprintf("pop(frame=%d, segment=%s, skip=%s)", a.FrameIndex, a.Segment, a.Skip)
	}
	return fmt.Sprintf("pop(frame=%d, segment=%s)", a.FrameIndex, a.Segment)
}

func (a Change) String() string {
	return fmt.Sprintf("change(frame=%d, %s -> %s)", a.FrameIndex, a.From, a.To)
}
