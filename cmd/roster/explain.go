package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "explain NAME",
		Short: "Show how a name scores against the staff directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultExplainLimit, "Maximum candidates to show (0 for all)")

	return cmd
}

func runExplain(cmd *cobra.Command, name string, limit int) error {
	return withDeps(cmd, func(deps *Deps) error {
		candidates, err := deps.ResolveHandler.Explain(commandContext(cmd), name, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(candidates) == 0 {
			fmt.Fprintf(out, "No candidates for %q.\n", name)
			return nil
		}

		rows := make([][]string, len(candidates))
		for i, c := range candidates {
			rows[i] = []string{strconv.Itoa(i + 1), c.Record.ID, c.Record.FullName, strconv.Itoa(c.Score), string(c.Tier)}
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "ID", "Name", "Score", "Tier"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
		))

		threshold := deps.Config.Matching.Threshold
		if candidates[0].Score >= threshold {
			if len(candidates) > 1 && candidates[1].Score == candidates[0].Score {
				fmt.Fprintf(out, "Ambiguous at threshold %d.\n", threshold)
			} else {
				fmt.Fprintf(out, "Matches %s at threshold %d.\n", candidates[0].Record.FullName, threshold)
			}
		} else {
			fmt.Fprintf(out, "No match at threshold %d.\n", threshold)
		}

		return nil
	})
}
