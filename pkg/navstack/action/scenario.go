package action

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf("unsupported scenario extension %q (expected .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Step is one navigation state in a scenario file. Animated defaults to true.
type Step struct {
	Route     []string `yaml:"route" toml:"route"`
	SkipRoute []string `yaml:"skip_route" toml:"skip_route"`
	Animated  *bool    `yaml:"animated" toml:"animated"`
}

// Scenario is a scripted sequence of navigation states:
//
//	name: login flow
//	steps:
//	  - route: [tabBar]
//	  - route: [tabBar, login]
//	    animated: false
//	  - route: [tabBar]
//	    skip_route: [login]
type Scenario struct {
	Name  string `yaml:"name" toml:"name"`
	Steps []Step `yaml:"steps" toml:"steps"`
}

// LoadScenario reads a YAML or TOML scenario file.
func LoadScenario(path string) (Scenario, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Scenario{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "read scenario")
	}
	sc, err := ParseScenario(data, format)
	if err != nil {
		return Scenario{}, errors.Wrapf(err, "parse scenario %s", path)
	}
	return sc, nil
}

// ParseScenario decodes scenario data in the given format.
func ParseScenario(data []byte, format Format) (Scenario, error) {
	var sc Scenario
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return Scenario{}, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			return Scenario{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Scenario{}, errors.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return Scenario{}, errors.Errorf("unsupported scenario format %q", format)
	}
	return sc, nil
}

// Actions converts every step into a SetRoute. A step without a route is an
// error: there is no safe default for it.
func (s Scenario) Actions() ([]SetRoute, error) {
	out := make([]SetRoute, 0, len(s.Steps))
	for i, step := range s.Steps {
		if step.Route == nil {
			return nil, navstack.NewDecodeError(SetRouteType, keyRoute,
				fmt.Errorf("%w: step %d has no route", navstack.ErrMalformedAction, i))
		}
		animated := true
		if step.Animated != nil {
			animated = *step.Animated
		}
		out = append(out, NewSetRoute(route.New(step.Route...),
			WithAnimated(animated),
			WithSkipRoute(route.New(step.SkipRoute...))))
	}
	return out, nil
}
