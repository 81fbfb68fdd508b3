package router

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
)

// callLog records frame calls across all test frames in the order issued.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// testFrame completes every transition immediately unless hang is set.
type testFrame struct {
	name string
	log  *callLog
	hang bool
}

func newTestFrame(name string, log *callLog) *testFrame {
	return &testFrame{name: name, log: log}
}

func (f *testFrame) PushRouteSegment(segment route.Segment, animated bool, done Completion) Routable {
	f.log.add("%s push %s", f.name, segment)
	f.finish(done)
	return &testFrame{name: string(segment), log: f.log}
}

func (f *testFrame) PopRouteSegment(segment route.Segment, animated bool, skip route.Segment, done Completion) {
	if skip != "" {
		f.log.add("%s pop %s skip %s", f.name, segment, skip)
	} else {
		f.log.add("%s pop %s", f.name, segment)
	}
	f.finish(done)
}

func (f *testFrame) ChangeRouteSegment(from, to route.Segment, animated bool, done Completion) {
	f.log.add("%s change %s -> %s", f.name, from, to)
	f.finish(done)
}

func (f *testFrame) finish(done Completion) {
	if !f.hang {
		done()
	}
}

func frameNames(frames []Routable) []string {
	names := make([]string, len(frames))
	for i, fr := range frames {
		if tf, ok := fr.(*testFrame); ok {
			names[i] = tf.name
		} else {
			names[i] = fmt.Sprintf("%T", fr)
		}
	}
	return names
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
