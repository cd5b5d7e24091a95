package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage events",
		RunE:  runEventsList,
	}

	cmd.AddCommand(
		newEventsListCmd(),
		newEventsCreateCmd(),
		newEventsRemoveCmd(),
	)

	return cmd
}

func newEventsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all events",
		RunE:  runEventsList,
	}
}

func runEventsList(cmd *cobra.Command, args []string) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	events, err := config.LoadEvents(base)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events.Events) == 0 {
		fmt.Fprintln(out, "No events configured.")
		fmt.Fprintln(out, "Use 'roster events create NAME' to create an event.")
		return nil
	}

	rows := make([][]string, 0, len(events.Events))
	for _, name := range events.Names() {
		event := events.Events[name]
		rows = append(rows, []string{name, event.ID, strconv.Itoa(len(event.Shifts)), event.Description})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Name", "ID", "Shifts", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))

	return nil
}

type eventsCreateFlags struct {
	id          string
	description string
	shifts      map[string]string
}

func newEventsCreateCmd() *cobra.Command {
	var flags eventsCreateFlags

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new event",
		Long: `Registers an event. Shifts map a time range to the shift ID stored on
assignments, for example --shift 16:00-06:00=night.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsCreate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.id, "id", "", "Event ID stored on assignments (default: generated)")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Event description")
	cmd.Flags().StringToStringVar(&flags.shifts, "shift", nil, "Shift catalog entry HH:MM-HH:MM=SHIFT_ID (repeatable)")

	return cmd
}

func runEventsCreate(cmd *cobra.Command, name string, flags eventsCreateFlags) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	if !config.Exists(base) {
		return fmt.Errorf("no roster project in %s (run 'roster init' first)", base)
	}

	events, err := config.LoadEvents(base)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	key := config.SanitizeEventName(name)
	if events.Exists(key) {
		return fmt.Errorf("event %q already exists", key)
	}

	entry := config.EventEntry{
		ID:          strings.TrimSpace(flags.id),
		Description: flags.description,
		Shifts:      flags.shifts,
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	events.Add(key, entry)
	if err := events.Save(base); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created event %q with ID %s\n", key, entry.ID)
	if len(entry.Shifts) > 0 {
		keys := make([]string, 0, len(entry.Shifts))
		for k := range entry.Shifts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "  shift %s -> %s\n", k, entry.Shifts[k])
		}
	}

	return nil
}

func newEventsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an event from the registry",
		Long:  "Removes the event from the registry. Stored assignments are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsRemove(cmd, args[0])
		},
	}
}

func runEventsRemove(cmd *cobra.Command, name string) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	events, err := config.LoadEvents(base)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	key := config.SanitizeEventName(name)
	if _, err := events.Get(key); err != nil {
		return err
	}

	events.Remove(key)
	if err := events.Save(base); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed event %q\n", key)

	return nil
}
