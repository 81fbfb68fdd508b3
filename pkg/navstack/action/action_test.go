package action

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

func TestNewSetRouteDefaults(t *testing.T) {
	a := NewSetRoute(route.New("tabBar"))
	if !a.Animated {
		t.Fatal("SetRoute should animate by default")
	}
	if a.SkipRoute == nil || len(a.SkipRoute) != 0 {
		t.Fatalf("SkipRoute = %#v, want empty", a.SkipRoute)
	}

	b := NewSetRoute(route.New("tabBar"), WithAnimated(false), WithSkipRoute(route.New("login")))
	if b.Animated || !b.SkipRoute.Equal(route.New("login")) {
		t.Fatalf("options not applied: %+v", b)
	}
}

func TestDecodeSetRouteAfterJSON(t *testing.T) {
	orig := NewSetRoute(route.New("tabBar", "login"), WithSkipRoute(route.New("login")))

	data, err := json.Marshal(orig.ToStandardAction())
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var sa StandardAction
	if err := json.Unmarshal(data, &sa); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	got, err := DecodeSetRoute(sa)
	if err != nil {
		t.Fatalf("DecodeSetRoute returned error: %v", err)
	}
	if !got.Route.Equal(orig.Route) || !got.SkipRoute.Equal(orig.SkipRoute) || got.Animated != orig.Animated {
		t.Fatalf("decoded %+v, want %+v", got, orig)
	}
	if !sa.IsTypedAction {
		t.Fatal("IsTypedAction lost")
	}
}

func TestDecodeSetRouteMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{
			name:    "missing route",
			payload: map[string]any{"animated": true, "skipRoute": []string{}},
			field:   "route",
		},
		{
			name:    "missing animated",
			payload: map[string]any{"route": []string{"a"}, "skipRoute": []string{}},
			field:   "animated",
		},
		{
			name:    "animated is a string",
			payload: map[string]any{"route": []string{"a"}, "animated": "yes", "skipRoute": []string{}},
			field:   "animated",
		},
		{
			name:    "missing skip route",
			payload: map[string]any{"route": []string{"a"}, "animated": true},
			field:   "skipRoute",
		},
		{
			name:    "route element is a number",
			payload: map[string]any{"route": []any{"a", 2.0}, "animated": true, "skipRoute": []any{}},
			field:   "route",
		},
		{
			name:    "route is a string",
			payload: map[string]any{"route": "a/b", "animated": true, "skipRoute": []any{}},
			field:   "route",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSetRoute(StandardAction{Type: SetRouteType, Payload: tt.payload})
			if !navstack.IsMalformed(err) {
				t.Fatalf("expected ErrMalformedAction, got %v", err)
			}
			var decErr *navstack.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if decErr.Field != tt.field {
				t.Fatalf("Field = %q, want %q", decErr.Field, tt.field)
			}
		})
	}
}

func TestDecodeWrongType(t *testing.T) {
	_, err := DecodeSetRoute(StandardAction{Type: "SOMETHING_ELSE"})
	if !errors.Is(err, navstack.ErrUnknownActionType) {
		t.Fatalf("expected ErrUnknownActionType, got %v", err)
	}
	if _, err := Decode(StandardAction{Type: "SOMETHING_ELSE"}); !errors.Is(err, navstack.ErrUnknownActionType) {
		t.Fatalf("expected ErrUnknownActionType from Decode, got %v", err)
	}
}

func TestDecodeUsesTypeMap(t *testing.T) {
	decoded, err := Decode(NewSetRoute(route.New("a")).ToStandardAction())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded.(SetRoute); !ok {
		t.Fatalf("Decode returned %T", decoded)
	}

	data := SetRouteSpecificData{Route: route.New("a"), Data: map[string]any{"scroll": 3}}
	decoded, err = Decode(data.ToStandardAction())
	if err != nil {
		t.Fatal(err)
	}
	got, ok := decoded.(SetRouteSpecificData)
	if !ok || !got.Route.Equal(route.New("a")) {
		t.Fatalf("Decode returned %#v", decoded)
	}
}

func TestStateConversion(t *testing.T) {
	s := router.NavigationState{Route: route.New("a", "b"), Animated: false}
	a := FromState(s)
	if a.SkipRoute == nil {
		t.Fatal("FromState should normalize a nil skip route")
	}
	back := a.State()
	if !back.Route.Equal(s.Route) || back.Animated {
		t.Fatalf("State() = %+v", back)
	}
}

func TestParseScenarioYAML(t *testing.T) {
	data := []byte(`
name: login flow
steps:
  - route: [tabBar]
  - route: [tabBar, login]
    animated: false
  - route: [tabBar]
    skip_route: [login]
`)
	sc, err := ParseScenario(data, FormatYAML)
	if err != nil {
		t.Fatalf("ParseScenario returned error: %v", err)
	}
	actions, err := sc.Actions()
	if err != nil {
		t.Fatalf("Actions returned error: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("got %d actions", len(actions))
	}
	if !actions[0].Animated || actions[1].Animated {
		t.Fatal("animated defaults were not applied")
	}
	if !actions[2].SkipRoute.Equal(route.New("login")) {
		t.Fatalf("skip route = %v", actions[2].SkipRoute)
	}
}

func TestParseScenarioYAMLUnknownField(t *testing.T) {
	_, err := ParseScenario([]byte("steps:\n  - rute: [a]\n"), FormatYAML)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestScenarioStepWithoutRoute(t *testing.T) {
	sc, err := ParseScenario([]byte("steps:\n  - animated: true\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.Actions(); !navstack.IsMalformed(err) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestLoadScenarioTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.toml")
	content := `name = "profile"

[[steps]]
route = ["tabBar", "profile"]

[[steps]]
route = ["tabBar"]
animated = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario returned error: %v", err)
	}
	if sc.Name != "profile" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	actions, err := sc.Actions()
	if err != nil {
		t.Fatal(err)
	}
	if actions[1].Animated {
		t.Fatal("second step should not animate")
	}
}

func TestLoadScenarioUnsupportedExtension(t *testing.T) {
	if _, err := LoadScenario("flow.json"); err == nil {
		t.Fatal("expected error for .json scenario")
	}
}
