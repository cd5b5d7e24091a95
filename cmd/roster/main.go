// Package main provides the entry point for the roster CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	projectDir string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "roster",
		Short:         "Resolve freeform staff rosters against a canonical staff directory",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory (default: current directory)")

	rootCmd.AddCommand(
		newInitCmd(),
		newEventsCmd(),
		newStaffCmd(),
		newResolveCmd(),
		newExplainCmd(),
		newAssignmentsCmd(),
		newAuditCmd(),
	)

	return rootCmd
}
