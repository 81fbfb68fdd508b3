// Package action converts navigation states to and from type-tagged standard
// actions, the generic form used by recording and replay tooling. No routing
// logic lives here: decoding only extracts the route, skip route and animated
// flag.
package action

import (
	"fmt"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
)

// Action types understood by Decode.
const (
	SetRouteType             = "NAVSTACK_SET_ROUTE"
	SetRouteSpecificDataType = "NAVSTACK_SET_ROUTE_SPECIFIC_DATA"
)

// Payload keys.
const (
	keyRoute     = "route"
	keyAnimated  = "animated"
	keySkipRoute = "skipRoute"
	keyData      = "data"
)

// StandardAction is the serializable envelope: a type tag plus a payload of
// plain values.
type StandardAction struct {
	Type          string         `json:"type" yaml:"type"`
	Payload       map[string]any `json:"payload" yaml:"payload"`
	IsTypedAction bool           `json:"isTypedAction" yaml:"isTypedAction"`
}

// SetRoute requests a new navigation route.
type SetRoute struct {
	Route     route.Route
	Animated  bool
	SkipRoute route.Route
}

// SetRouteOption customizes NewSetRoute.
type SetRouteOption func(*SetRoute)

// WithAnimated sets whether transitions should animate.
func WithAnimated(animated bool) SetRouteOption {
	return func(a *SetRoute) { a.Animated = animated }
}

// WithSkipRoute sets the segments to skip past when popped.
func WithSkipRoute(skip route.Route) SetRouteOption {
	return func(a *SetRoute) { a.SkipRoute = skip.Clone() }
}

// NewSetRoute creates an animated SetRoute with an empty skip route unless
// options say otherwise.
func NewSetRoute(r route.Route, opts ...SetRouteOption) SetRoute {
	a := SetRoute{Route: r.Clone(), Animated: true, SkipRoute: route.Route{}}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// FromState wraps a navigation state.
func FromState(s router.NavigationState) SetRoute {
	skip := s.SkipRoute.Clone()
	if skip == nil {
		skip = route.Route{}
	}
	return SetRoute{Route: s.Route.Clone(), Animated: s.Animated, SkipRoute: skip}
}

// State returns the navigation state the router should receive.
func (a SetRoute) State() router.NavigationState {
	return router.NavigationState{
		Route:     a.Route.Clone(),
		SkipRoute: a.SkipRoute.Clone(),
		Animated:  a.Animated,
	}
}

func (a SetRoute) ToStandardAction() StandardAction {
	skip := a.SkipRoute
	if skip == nil {
		skip = route.Route{}
	}
	return StandardAction{
		Type: SetRouteType,
		Payload: map[string]any{
			keyRoute:     a.Route.Strings(),
			keyAnimated:  a.Animated,
			keySkipRoute: skip.Strings(),
		},
		IsTypedAction: true,
	}
}

// DecodeSetRoute extracts a SetRoute from a standard action. Every payload
// field is required.
func DecodeSetRoute(sa StandardAction) (SetRoute, error) {
	if sa.Type != SetRouteType {
		return SetRoute{}, fmt.Errorf("%w: %q is not %s", navstack.ErrUnknownActionType, sa.Type, SetRouteType)
	}
	r, err := routeField(sa, keyRoute)
	if err != nil {
		return SetRoute{}, err
	}
	animated, err := boolField(sa, keyAnimated)
	if err != nil {
		return SetRoute{}, err
	}
	skip, err := routeField(sa, keySkipRoute)
	if err != nil {
		return SetRoute{}, err
	}
	return SetRoute{Route: r, Animated: animated, SkipRoute: skip}, nil
}

// SetRouteSpecificData attaches application data to a route. The router
// ignores it; it only travels through recordings.
type SetRouteSpecificData struct {
	Route route.Route
	Data  any
}

func (a SetRouteSpecificData) ToStandardAction() StandardAction {
	return StandardAction{
		Type: SetRouteSpecificDataType,
		Payload: map[string]any{
			keyRoute: a.Route.Strings(),
			keyData:  a.Data,
		},
		IsTypedAction: true,
	}
}

// DecodeSetRouteSpecificData extracts route data from a standard action.
func DecodeSetRouteSpecificData(sa StandardAction) (SetRouteSpecificData, error) {
	if sa.Type != SetRouteSpecificDataType {
		return SetRouteSpecificData{}, fmt.Errorf("%w: %q is not %s", navstack.ErrUnknownActionType, sa.Type, SetRouteSpecificDataType)
	}
	r, err := routeField(sa, keyRoute)
	if err != nil {
		return SetRouteSpecificData{}, err
	}
	data, ok := sa.Payload[keyData]
	if !ok {
		return SetRouteSpecificData{}, navstack.NewDecodeError(sa.Type, keyData, nil)
	}
	return SetRouteSpecificData{Route: r, Data: data}, nil
}

// Decoder turns a standard action into its typed form.
type Decoder func(StandardAction) (any, error)

// TypeMap lists the decoder for every action type this package produces.
// Recording tools register it to rebuild typed actions.
var TypeMap = map[string]Decoder{
	SetRouteType: func(sa StandardAction) (any, error) {
		return DecodeSetRoute(sa)
	},
	SetRouteSpecificDataType: func(sa StandardAction) (any, error) {
		return DecodeSetRouteSpecificData(sa)
	},
}

// Decode looks up the decoder for sa.Type in TypeMap.
func Decode(sa StandardAction) (any, error) {
	dec, ok := TypeMap[sa.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", navstack.ErrUnknownActionType, sa.Type)
	}
	return dec(sa)
}

func routeField(sa StandardAction, key string) (route.Route, error) {
	raw, ok := sa.Payload[key]
	if !ok || raw == nil {
		return nil, navstack.NewDecodeError(sa.Type, key, nil)
	}
	switch v := raw.(type) {
	case route.Route:
		return v.Clone(), nil
	case []string:
		return route.New(v...), nil
	case []any:
		r := make(route.Route, len(v))
		for i, el := range v {
			s, ok := el.(string)
			if !ok {
				return nil, navstack.NewDecodeError(sa.Type, key,
					fmt.Errorf("%w: element %d is %T, not a string", navstack.ErrMalformedAction, i, el))
			}
			r[i] = route.Segment(s)
		}
		return r, nil
	default:
		return nil, navstack.NewDecodeError(sa.Type, key,
			fmt.Errorf("%w: %T is not a route", navstack.ErrMalformedAction, raw))
	}
}

func boolField(sa StandardAction, key string) (bool, error) {
	raw, ok := sa.Payload[key]
	if !ok {
		return false, navstack.NewDecodeError(sa.Type, key, nil)
	}
	b, ok := raw.(bool)
	if !ok {
		return false, navstack.NewDecodeError(sa.Type, key,
			fmt.Errorf("%w: %T is not a bool", navstack.ErrMalformedAction, raw))
	}
	return b, nil
}
