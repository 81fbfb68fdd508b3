package route

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
)

func TestCommonPrefixLength(t *testing.T) {
	tests := []struct {
		name     string
		old, new Route
		want     int
	}{
		{"both empty", Route{}, Route{}, 0},
		{"empty old", Route{}, New("a", "b"), 0},
		{"identical", New("a", "b", "c"), New("a", "b", "c"), 3},
		{"new is prefix", New("a", "b", "c"), New("a", "b"), 2},
		{"old is prefix", New("a"), New("a", "b"), 1},
		{"diverge in middle", New("a", "b", "c"), New("a", "x", "c"), 1},
		{"transposition", New("a", "b"), New("b", "a"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonPrefixLength(tt.old, tt.new); got != tt.want {
				t.Fatalf("CommonPrefixLength(%v, %v) = %d, want %d", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestCommonPrefixLengthWithItself(t *testing.T) {
	for _, r := range []Route{{}, New("tabBar"), New("tabBar", "login", "tabBar")} {
		if got := CommonPrefixLength(r, r); got != len(r) {
			t.Fatalf("CommonPrefixLength(%v, %v) = %d, want %d", r, r, got, len(r))
		}
	}
}

func TestEqual(t *testing.T) {
	if !New("a", "b").Equal(New("a", "b")) {
		t.Fatal("expected equal routes")
	}
	if New("a", "b").Equal(New("a")) {
		t.Fatal("prefix must not be equal")
	}
	if New("a", "b").Equal(New("b", "a")) {
		t.Fatal("reordered routes must not be equal")
	}
	if !Route(nil).Equal(Route{}) {
		t.Fatal("nil and empty routes should be equal")
	}
}

func TestFirst(t *testing.T) {
	skip := New("login", "signup", "login")
	got, ok := skip.First("login")
	if !ok || got != "login" {
		t.Fatalf("First(login) = %q, %v", got, ok)
	}
	if _, ok := skip.First("profile"); ok {
		t.Fatal("First(profile) should not match")
	}
}

func TestParse(t *testing.T) {
	r, err := Parse("/tabBar/login/")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !r.Equal(New("tabBar", "login")) {
		t.Fatalf("unexpected route %v", r)
	}
	if r.String() != "tabBar/login" {
		t.Fatalf("String() = %q", r.String())
	}

	empty, err := Parse("")
	if err != nil || len(empty) != 0 {
		t.Fatalf("Parse(\"\") = %v, %v", empty, err)
	}

	if _, err := Parse("a//b"); !errors.Is(err, navstack.ErrEmptySegment) {
		t.Fatalf("expected ErrEmptySegment, got %v", err)
	}
}

func TestFrameIndexOffset(t *testing.T) {
	if FrameIndex(0) != 1 {
		t.Fatalf("FrameIndex(0) = %d", FrameIndex(0))
	}
	if FrameIndex(-1) != 0 {
		t.Fatalf("the parent of the first segment must be the root frame")
	}
	if RouteIndex(FrameIndex(3)) != 3 {
		t.Fatal("RouteIndex must invert FrameIndex")
	}
}

func TestClone(t *testing.T) {
	r := New("a", "b")
	c := r.Clone()
	c[0] = "z"
	if r[0] != "a" {
		t.Fatal("Clone shares storage")
	}
}
