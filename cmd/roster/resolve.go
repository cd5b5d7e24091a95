package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/application/handlers"
	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
	"github.com/ersonp/roster-resolve/internal/infrastructure/runlock"
)

type resolveFlags struct {
	event       string
	roster      string
	format      string
	threshold   int
	dryRun      bool
	allowErrors bool
	asJSON      bool
}

func newResolveCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a roster file into assignments for an event",
		Long: `Matches every roster name against the active staff directory and replaces
the event's assignments with the confident matches. Ambiguous and unmatched
names are reported and never assigned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.event, "event", "e", "", "Event name from the registry (required)")
	cmd.Flags().StringVarP(&flags.roster, "roster", "r", "", "Roster file (required)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "Roster format (json, csv, yaml, auto)")
	cmd.Flags().IntVarP(&flags.threshold, "threshold", "t", 0, "Minimum score to assign (default: from config)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Resolve without saving assignments")
	cmd.Flags().BoolVar(&flags.allowErrors, "allow-errors", false, "Save even when some roster rows are invalid")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output the run report as JSON")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func runResolve(cmd *cobra.Command, flags resolveFlags) error {
	if err := validateFormat(flags.format); err != nil {
		return err
	}

	return withDeps(cmd, func(deps *Deps) error {
		event, err := deps.Events.Get(config.SanitizeEventName(flags.event))
		if err != nil {
			return err
		}

		threshold := deps.Config.Matching.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold = flags.threshold
		}

		opts := handlers.ResolveOptions{
			Format:      flags.format,
			EventID:     event.ID,
			Threshold:   threshold,
			Shifts:      event.ShiftCatalog(),
			DryRun:      flags.dryRun,
			AllowErrors: flags.allowErrors,
		}

		var result *handlers.ResolveResult
		resolve := func() error {
			result, err = deps.ResolveHandler.Handle(commandContext(cmd), flags.roster, opts)
			return err
		}
		if flags.dryRun {
			err = resolve()
		} else {
			err = runlock.With(config.LockFilePath(deps.BasePath), resolve)
		}

		if result != nil && !flags.asJSON {
			printImportErrors(cmd, "Roster errors", result.Errors)
		}
		if errors.Is(err, handlers.ErrRosterRejected) {
			return fmt.Errorf("%w (fix the rows, or use --dry-run or --allow-errors)", err)
		}
		if err != nil {
			return err
		}

		if flags.asJSON {
			return writeJSON(cmd, result)
		}

		report := result.Report
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTable(
			[]string{"Line", "Name", "Status", "Staff", "Score", "Tier", "Tables", "Shift"},
			resultRows(report.Results),
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
		))
		fmt.Fprintf(out, "Matched: %d, ambiguous: %d, unmatched: %d (threshold %d, %d active staff)\n",
			report.Matched, report.Ambiguous, report.Unmatched, report.Threshold, report.DirectorySize)

		if report.DryRun {
			fmt.Fprintf(out, "Dry run: %d assignments would be saved\n", len(report.Assignments))
		} else {
			fmt.Fprintf(out, "Saved %d assignments for event %s (run %s)\n", len(report.Assignments), report.EventID, report.RunID)
		}

		return nil
	})
}
