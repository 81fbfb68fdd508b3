package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var kindTitleCaser = cases.Title(language.Und, cases.NoLower)

type planOptions struct {
	skip   string
	diff   bool
	output string
}

// planStep is the serialized form of one routing action.
type planStep struct {
	Kind    string `json:"kind" yaml:"kind"`
	Frame   int    `json:"frame" yaml:"frame"`
	Segment string `json:"segment,omitempty" yaml:"segment,omitempty"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
	Skip    string `json:"skip,omitempty" yaml:"skip,omitempty"`
}

type planOutput struct {
	From    string     `json:"from" yaml:"from"`
	To      string     `json:"to" yaml:"to"`
	Actions []planStep `json:"actions" yaml:"actions"`
}

func newPlanCommand() *cobra.Command {
	opts := &planOptions{output: "text"}
	cmd := &cobra.Command{
		Use:   "plan FROM TO",
		Short: "Print the routing actions between two routes",
		Long:  "plan reconciles FROM against TO and prints the pops, pushes and change a router would run, in order. Routes are written as segment/segment; use \"\" for the empty route.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := route.Parse(args[0])
			if err != nil {
				return errors.Wrap(err, "parse FROM")
			}
			to, err := route.Parse(args[1])
			if err != nil {
				return errors.Wrap(err, "parse TO")
			}
			skip, err := route.Parse(opts.skip)
			if err != nil {
				return errors.Wrap(err, "parse --skip")
			}
			actions, _ := router.Reconcile(from, to, skip, nil)

			out := cmd.OutOrStdout()
			if opts.diff {
				if err := writeRouteDiff(out, from, to); err != nil {
					return err
				}
			}
			return writePlan(out, opts.output, from, to, actions)
		},
	}
	cmd.Flags().StringVar(&opts.skip, "skip", "", "Segments to skip past when popped (segment/segment)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a unified diff of the two routes before the plan")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, yaml or json")
	return cmd
}

func writePlan(w io.Writer, format string, from, to route.Route, actions []router.Action) error {
	switch strings.ToLower(format) {
	case "text", "":
		return writePlanText(w, from, to, actions)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newPlanOutput(from, to, actions)); err != nil {
			return errors.Wrap(err, "encode plan")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newPlanOutput(from, to, actions))
	default:
		return fmt.Errorf("unknown output format %q (expected text, yaml or json)", format)
	}
}

func newPlanOutput(from, to route.Route, actions []router.Action) planOutput {
	out := planOutput{From: from.String(), To: to.String(), Actions: make([]planStep, 0, len(actions))}
	for _, a := range actions {
		step := planStep{Kind: a.Kind().String(), Frame: a.Frame()}
		switch a := a.(type) {
		case router.Push:
			step.Segment = string(a.Segment)
		case router.Pop:
			step.Segment = string(a.Segment)
			step.Skip = string(a.Skip)
		case router.Change:
			step.From = string(a.From)
			step.To = string(a.To)
		}
		out.Actions = append(out.Actions, step)
	}
	return out
}

func writePlanText(w io.Writer, from, to route.Route, actions []router.Action) error {
	fmt.Fprintf(w, "%s -> %s\n", displayRoute(from), displayRoute(to))
	if len(actions) == 0 {
		fmt.Fprintf(w, "  %s\n", localize(msgNoActions, nil))
		return nil
	}
	for i, a := range actions {
		label := kindColor(a.Kind()).Sprintf("%-6s", kindTitleCaser.String(a.Kind().String()))
		fmt.Fprintf(w, "  %d. %s frame=%d  %s\n", i+1, label, a.Frame(), actionDetail(a))
	}
	return nil
}

func actionDetail(a router.Action) string {
	switch a := a.(type) {
	case router.Push:
		return string(a.Segment)
	case router.Pop:
		if a.Skipped() {
			return fmt.Sprintf("%s (skip %s)", a.Segment, a.Skip)
		}
		return string(a.Segment)
	case router.Change:
		return fmt.Sprintf("%s -> %s", a.From, a.To)
	default:
		return a.String()
	}
}

func kindColor(k router.Kind) *color.Color {
	switch k {
	case router.KindPush:
		return color.New(color.FgGreen)
	case router.KindPop:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

func displayRoute(r route.Route) string {
	if len(r) == 0 {
		return "(empty)"
	}
	return r.String()
}

func writeRouteDiff(w io.Writer, from, to route.Route) error {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(from.Strings(), "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(to.Strings(), "\n") + "\n"),
		FromFile: "from",
		ToFile:   "to",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return errors.Wrap(err, "render route diff")
	}
	_, err = io.WriteString(w, text)
	return err
}
