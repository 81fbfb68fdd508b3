package router

import (
	"testing"

	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
)

func TestFrames(t *testing.T) {
	log := &callLog{}
	f := NewFrames(newTestFrame("root", log))

	if f.Len() != 1 {
		t.Fatalf("new registry has %d frames", f.Len())
	}
	f.Append(newTestFrame("a", log))
	f.Append(newTestFrame("b", log))

	if fr, ok := f.At(2); !ok || fr.(*testFrame).name != "b" {
		t.Fatalf("At(2) = %v, %v", fr, ok)
	}
	if _, ok := f.At(3); ok {
		t.Fatal("At(3) should be out of range")
	}
	if _, ok := f.At(-1); ok {
		t.Fatal("At(-1) should be out of range")
	}

	if f.RemoveAt(0) {
		t.Fatal("the root frame must not be removable")
	}
	if !f.RemoveAt(1) {
		t.Fatal("RemoveAt(1) failed")
	}
	if got := frameNames(f.Snapshot()); !equalStrings(got, []string{"root", "b"}) {
		t.Fatalf("frames = %v", got)
	}
}

func TestFramesSnapshotIsCopy(t *testing.T) {
	log := &callLog{}
	f := NewFrames(newTestFrame("root", log))
	f.Append(newTestFrame("a", log))

	snap := f.Snapshot()
	snap[1] = newTestFrame("z", log)

	if fr, _ := f.At(1); fr.(*testFrame).name != "a" {
		t.Fatal("Snapshot shares storage with the registry")
	}
}

func TestFramesReplace(t *testing.T) {
	log := &callLog{}
	root := newTestFrame("root", log)
	f := NewFrames(root)
	f.Append(newTestFrame("a", log))
	f.Append(newTestFrame("b", log))

	_, next := Reconcile(route.New("a", "b"), route.New("b", "a"), nil, f.Snapshot())
	f.Replace(next)
	if got := frameNames(f.Snapshot()); !equalStrings(got, []string{"root", "b", "a"}) {
		t.Fatalf("frames after Replace = %v", got)
	}

	f.Replace(nil)
	if f.Len() != 3 {
		t.Fatalf("Replace(nil) changed the registry to %d frames", f.Len())
	}
}
