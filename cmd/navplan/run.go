package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BrandonKowalski/navstack/pkg/navstack/action"
	"github.com/BrandonKowalski/navstack/pkg/navstack/recorder"
	"github.com/BrandonKowalski/navstack/pkg/navstack/route"
	"github.com/BrandonKowalski/navstack/pkg/navstack/router"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var recordPath string
	cmd := &cobra.Command{
		Use:   "run SCENARIO",
		Short: "Drive a router through a scenario file",
		Long:  "run feeds each step of a YAML or TOML scenario to a router whose frames print every push, pop and change they receive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := action.LoadScenario(args[0])
			if err != nil {
				return err
			}
			steps, err := sc.Actions()
			if err != nil {
				return err
			}
			opts, err := root.routerOptions(cmd)
			if err != nil {
				return err
			}

			var onStep func(context.Context, action.SetRoute) error
			var session string
			if recordPath != "" {
				rec, err := recorder.New(recordPath)
				if err != nil {
					return err
				}
				defer rec.Close()
				session = rec.NewSession()
				onStep = func(ctx context.Context, a action.SetRoute) error {
					return rec.Record(ctx, session, a.ToStandardAction())
				}
			}

			if sc.Name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "scenario %s\n", sc.Name)
			}
			if err := runSteps(cmd.Context(), cmd.OutOrStdout(), opts, steps, onStep); err != nil {
				return err
			}
			if session != "" {
				fmt.Fprintln(cmd.OutOrStdout(), localize(msgRecordedSession, map[string]any{"Session": session}))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "Record every step into this SQLite database")
	return cmd
}

// runSteps routes each state in turn. Frame calls are issued on a Loop
// drained by its own goroutine, the way a UI main loop would run them, while
// a second goroutine feeds states and waits for each to settle.
func runSteps(ctx context.Context, w io.Writer, opts router.Options, steps []action.SetRoute, onStep func(context.Context, action.SetRoute) error) error {
	out := &lockedWriter{w: w}
	loop := router.NewLoop(0)
	opts.Dispatcher = loop
	r := router.New(newPrintingFrame(out), opts)

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stopLoop := context.WithCancel(gctx)
	defer stopLoop()

	g.Go(func() error {
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer stopLoop()
		for i, step := range steps {
			fmt.Fprintf(out, "step %d: %s\n", i+1, displayRoute(step.Route))
			if onStep != nil {
				if err := onStep(gctx, step); err != nil {
					return err
				}
			}
			if err := r.NewState(step.State()); err != nil {
				return err
			}
			if err := r.Flush(gctx); err != nil {
				return err
			}
		}
		return nil
	})

	runErr := g.Wait()
	closeErr := r.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	stats := r.Stats()
	fmt.Fprintln(out, localize(msgRunSummary, map[string]any{"Completed": stats.Completed, "Stuck": stats.Stuck}))
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// printingFrame is a routable that prints what it is asked to do and
// completes at once. Children print indented below their parent.
type printingFrame struct {
	name  string
	depth int
	out   io.Writer
}

func newPrintingFrame(out io.Writer) *printingFrame {
	return &printingFrame{name: "root", out: out}
}

func (f *printingFrame) PushRouteSegment(segment route.Segment, animated bool, done router.Completion) router.Routable {
	f.printf("push %s%s", segment, animationSuffix(animated))
	done()
	return &printingFrame{name: string(segment), depth: f.depth + 1, out: f.out}
}

func (f *printingFrame) PopRouteSegment(segment route.Segment, animated bool, skip route.Segment, done router.Completion) {
	if skip != "" {
		f.printf("pop %s skip=%s%s", segment, skip, animationSuffix(animated))
	} else {
		f.printf("pop %s%s", segment, animationSuffix(animated))
	}
	done()
}

func (f *printingFrame) ChangeRouteSegment(from, to route.Segment, animated bool, done router.Completion) {
	f.printf("change %s -> %s%s", from, to, animationSuffix(animated))
	done()
}

func (f *printingFrame) printf(format string, args ...any) {
	indent := strings.Repeat("  ", f.depth+1)
	fmt.Fprintf(f.out, "%s%s: %s\n", indent, f.name, fmt.Sprintf(format, args...))
}

func animationSuffix(animated bool) string {
	if animated {
		return ""
	}
	return " (instant)"
}
