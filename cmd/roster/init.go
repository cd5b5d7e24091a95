package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new roster project",
		Long:  "Creates a .roster directory with default configuration and an empty staff database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler().Handle(commandContext(cmd), base)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Created database: %s\n", result.DatabasePath)
	fmt.Fprintln(out, "Roster initialized successfully!")

	return nil
}
