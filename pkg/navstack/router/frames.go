package router

import "sync"

// Frames is the ordered registry of live routables. Index 0 holds the root
// routable, which has no route segment; index i+1 belongs to route position i.
//
// Only the router mutates the registry: reconciliation replaces it (swaps),
// issued pushes append to it and issued pops remove from it.
type Frames struct {
	mu      sync.Mutex
	entries []Routable
}

// NewFrames creates a registry holding only the root routable.
func NewFrames(root Routable) *Frames {
	return &Frames{
		entries: []Routable{root},
	}
}

// At returns the routable at index i.
func (f *Frames) At(i int) (Routable, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.entries) {
		return nil, false
	}
	return f.entries[i], true
}

// Append adds a routable after the deepest frame.
// Called when a push is issued.
func (f *Frames) Append(r Routable) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, r)
}

// RemoveAt removes the routable at index i. The root cannot be removed.
// Called when a pop is issued.
func (f *Frames) RemoveAt(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i <= 0 || i >= len(f.entries) {
		return false
	}
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
	return true
}

// Replace swaps in a new registry, typically the frame list returned by
// Reconcile. An empty list is ignored: the root is never dropped.
func (f *Frames) Replace(frames []Routable) {
	if len(frames) == 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]Routable(nil), frames...)
}

// Len returns the number of frames, root included.
func (f *Frames) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Snapshot returns a copy of the registry.
func (f *Frames) Snapshot() []Routable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Routable(nil), f.entries...)
}

// update replaces the registry with the result of fn while holding the lock,
// so no push or pop bookkeeping can interleave with a reconciliation.
func (f *Frames) update(fn func(current []Routable) []Routable) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = fn(f.entries)
}
