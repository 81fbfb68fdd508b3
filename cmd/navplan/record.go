package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/BrandonKowalski/navstack/pkg/navstack"
	"github.com/BrandonKowalski/navstack/pkg/navstack/action"
	"github.com/BrandonKowalski/navstack/pkg/navstack/recorder"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRecordCommand() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "record SCENARIO",
		Short: "Store a scenario as a recorded session",
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
			rec, err := recorder.New(dbPath)
			if err != nil {
				return err
			}
			defer rec.Close()

			session := rec.NewSession()
			for i, step := range steps {
				if err := rec.Record(cmd.Context(), session, step.ToStandardAction()); err != nil {
					return errors.Wrapf(err, "record step %d", i+1)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), localize(msgRecordedSteps, map[string]any{"Count": len(steps), "Session": session}))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to record into")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func newReplayCommand(root *rootOptions) *cobra.Command {
	var dbPath, session string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Drive a router through a recorded session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recorder.New(dbPath)
			if err != nil {
				return err
			}
			defer rec.Close()

			stored, err := rec.Load(cmd.Context(), session)
			if err != nil {
				return err
			}
			if len(stored) == 0 {
				return fmt.Errorf("session %q has no recorded actions", session)
			}

			var steps []action.SetRoute
			logger := navstack.GetLogger()
			for i, sa := range stored {
				decoded, err := action.Decode(sa)
				if err != nil {
					return errors.Wrapf(err, "decode action %d", i+1)
				}
				switch a := decoded.(type) {
				case action.SetRoute:
					steps = append(steps, a)
				default:
					logger.Debug("skipping non-routing action", "type", sa.Type, "index", i+1)
				}
			}

			opts, err := root.routerOptions(cmd)
			if err != nil {
				return err
			}
			return runSteps(cmd.Context(), cmd.OutOrStdout(), opts, steps, nil)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database holding the recording")
	cmd.Flags().StringVar(&session, "session", "", "Session id to replay")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func newSessionsCommand() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recorder.New(dbPath)
			if err != nil {
				return err
			}
			defer rec.Close()

			sessions, err := rec.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SESSION\tACTIONS\tSTARTED\tDURATION")
			for _, s := range sessions {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
					s.ID, s.Actions,
					s.Started.Local().Format(time.DateTime),
					s.Ended.Sub(s.Started).Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database holding recordings")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
