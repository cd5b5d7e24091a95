package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/application/handlers"
	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/services"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage the staff directory",
	}

	cmd.AddCommand(
		newStaffImportCmd(),
		newStaffListCmd(),
		newStaffStatusCmd("deactivate", "Exclude a staff record from future runs", false),
		newStaffStatusCmd("activate", "Include a deactivated staff record again", true),
	)

	return cmd
}

type staffImportFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newStaffImportCmd() *cobra.Command {
	var flags staffImportFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import staff records from JSON, CSV or YAML",
		Long:  "Imports staff records (id, full_name, active). Records without an id get a generated one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaffImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, yaml, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")

	return cmd
}

func runStaffImport(cmd *cobra.Command, filePath string, flags staffImportFlags) error {
	// Validate on-conflict flag
	strategy := services.ConflictStrategy(flags.onConflict)
	if strategy != services.ConflictSkip && strategy != services.ConflictOverwrite {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, overwrite)", flags.onConflict)
	}
	if err := validateFormat(flags.format); err != nil {
		return err
	}

	return withDeps(cmd, func(deps *Deps) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Importing %s...\n", filePath)

		result, err := deps.StaffHandler.Import(commandContext(cmd), filePath, handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: strategy,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		printImportErrors(cmd, "Validation errors", result.Errors)

		// Display summary
		fmt.Fprintln(out)
		if flags.dryRun {
			fmt.Fprintf(out, "Dry run: %d records would be imported", result.Imported)
		} else {
			fmt.Fprintf(out, "Imported: %d records", result.Imported)
		}
		if result.Skipped > 0 {
			fmt.Fprintf(out, ", %d skipped (already exist)", result.Skipped)
		}
		if len(result.Errors) > 0 {
			fmt.Fprintf(out, ", %d errors", len(result.Errors))
		}
		fmt.Fprintln(out)

		return nil
	})
}

type staffListFlags struct {
	all    bool
	asJSON bool
}

func newStaffListCmd() *cobra.Command {
	var flags staffListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staff records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStaffList(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Include deactivated records")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output as JSON")

	return cmd
}

func runStaffList(cmd *cobra.Command, flags staffListFlags) error {
	return withDeps(cmd, func(deps *Deps) error {
		records, err := deps.StaffHandler.List(commandContext(cmd), flags.all)
		if err != nil {
			return err
		}

		if flags.asJSON {
			if records == nil {
				records = []entities.DirectoryRecord{}
			}
			return writeJSON(cmd, records)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No staff records.")
			return nil
		}

		fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Active", "Created"}, staffRows(records), nil))
		fmt.Fprintf(out, "%d records\n", len(records))
		return nil
	})
}

func staffRows(records []entities.DirectoryRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		active := "yes"
		if !r.Active {
			active = "no"
		}
		rows[i] = []string{r.ID, r.FullName, active, r.CreatedAt.Local().Format(time.DateOnly)}
	}
	return rows
}

func newStaffStatusCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, func(deps *Deps) error {
				if err := deps.StaffHandler.SetActive(commandContext(cmd), args[0], active); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Staff %s %sd\n", args[0], use)
				return nil
			})
		},
	}
}

func printImportErrors(cmd *cobra.Command, title string, errs []services.ImportError) {
	if len(errs) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "  %s\n", e.Error())
	}
}
