package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
)

func newAssignmentsCmd() *cobra.Command {
	var (
		event  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Show the stored assignments of an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssignments(cmd, event, asJSON)
		},
	}

	cmd.Flags().StringVarP(&event, "event", "e", "", "Event name from the registry (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func runAssignments(cmd *cobra.Command, eventName string, asJSON bool) error {
	return withDeps(cmd, func(deps *Deps) error {
		event, err := deps.Events.Get(config.SanitizeEventName(eventName))
		if err != nil {
			return err
		}

		assignments, err := deps.ResolveHandler.Assignments(commandContext(cmd), event.ID)
		if err != nil {
			return err
		}

		if asJSON {
			if assignments == nil {
				assignments = []entities.Assignment{}
			}
			return writeJSON(cmd, assignments)
		}

		out := cmd.OutOrStdout()
		if len(assignments) == 0 {
			fmt.Fprintf(out, "No assignments for event %s.\n", event.ID)
			return nil
		}

		fmt.Fprintln(out, renderTable(
			[]string{"#", "Staff", "Staff ID", "Tables", "Shift", "Shift ID"},
			assignmentRows(assignments),
			[]columnAlignment{alignRight},
		))

		return nil
	})
}
