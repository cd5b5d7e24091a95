package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent runs, imports and status changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultAuditLimit, "Maximum entries to show (0 for all)")

	return cmd
}

func runAudit(cmd *cobra.Command, limit int) error {
	return withDeps(cmd, func(deps *Deps) error {
		entries, err := deps.AuditHandler.Recent(commandContext(cmd), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No audit entries.")
			return nil
		}

		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{
				strconv.FormatInt(e.ID, 10),
				e.CreatedAt.Local().Format(time.DateTime),
				e.Action,
				e.Subject,
				formatDetails(e.Details),
			}
		}
		fmt.Fprintln(out, renderTable([]string{"ID", "Time", "Action", "Subject", "Details"}, rows, []columnAlignment{alignRight}))

		return nil
	})
}
