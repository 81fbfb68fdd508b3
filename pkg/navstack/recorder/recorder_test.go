package recorder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/navstack/pkg/navstack/action"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	rec, err := New(filepath.Join(t.TempDir(), "nested", "nav.db"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := rec.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	})
	return rec
}

func TestRecorderKeepsOrderPerSession(t *testing.T) {
	rec := newTestRecorder(t)
	ctx := context.Background()

	first := rec.NewSession()
	second := rec.NewSession()
	if first == second {
		t.Fatal("sessions must be unique")
	}

	routes := []route.Route{
		route.New("tabBar"),
		route.New("tabBar", "login"),
		route.New("tabBar"),
	}
	for i, r := range routes {
		if err := rec.Record(ctx, first, action.NewSetRoute(r).ToStandardAction()); err != nil {
			t.Fatalf("Record %d returned error: %v", i, err)
		}
		// Interleave another session to check isolation.
		if err := rec.Record(ctx, second, action.NewSetRoute(route.New("other")).ToStandardAction()); err != nil {
			t.Fatal(err)
		}
	}

	loaded, err := rec.Load(ctx, first)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded) != len(routes) {
		t.Fatalf("loaded %d actions, want %d", len(loaded), len(routes))
	}
	for i, sa := range loaded {
		a, err := action.DecodeSetRoute(sa)
		if err != nil {
			t.Fatalf("DecodeSetRoute %d returned error: %v", i, err)
		}
		if !a.Route.Equal(routes[i]) {
			t.Fatalf("action %d route = %v, want %v", i, a.Route, routes[i])
		}
	}

	sessions, err := rec.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions returned error: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != first || sessions[0].Actions != 3 {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if sessions[0].Started.IsZero() {
		t.Fatal("session start time not parsed")
	}
}

func TestRecorderRejectsEmptyInput(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	rec := newTestRecorder(t)
	if err := rec.Record(context.Background(), "", action.NewSetRoute(route.New("a")).ToStandardAction()); err == nil {
		t.Fatal("expected error for empty session")
	}
}

func TestRecorderUnknownSessionIsEmpty(t *testing.T) {
	rec := newTestRecorder(t)
	loaded, err := rec.Load(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 0 {
		t.Fatalf("loaded %v", loaded)
	}
}
