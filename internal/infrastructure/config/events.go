package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// EventsConfig holds the event registry (read/write).
type EventsConfig struct {
	Events map[string]EventEntry `yaml:"events,omitempty"`
}

// EventEntry holds configuration for a specific event.
type EventEntry struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description,omitempty"`
	Shifts      map[string]string `yaml:"shifts,omitempty"` // "HH:MM-HH:MM" -> shift ID
}

// Validate checks that every shift key names both ends of a shift.
func (e EventEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id is required")
	}
	for key, id := range e.Shifts {
		start, end, err := entities.ParseShift(key)
		if err != nil {
			return fmt.Errorf("shift %q: %w", key, err)
		}
		if start == nil || end == nil {
			return fmt.Errorf("shift %q must have a start and an end", key)
		}
		if id == "" {
			return fmt.Errorf("shift %q has no id", key)
		}
	}
	return nil
}

// ShiftCatalog returns the shift table keyed by canonical "HH:MM-HH:MM",
// so "6:00-14:00" in the file matches a roster's "06:00-14:00".
func (e EventEntry) ShiftCatalog() map[string]string {
	catalog := make(map[string]string, len(e.Shifts))
	for key, id := range e.Shifts {
		start, end, err := entities.ParseShift(key)
		if err != nil || start == nil || end == nil {
			continue
		}
		catalog[start.String()+"-"+end.String()] = id
	}
	return catalog
}

// LoadEvents loads the event registry from the .roster directory.
func LoadEvents(basePath string) (*EventsConfig, error) {
	data, err := os.ReadFile(EventsFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty registry if file doesn't exist
		return &EventsConfig{
			Events: make(map[string]EventEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading events file: %w", err)
	}

	var cfg EventsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing events file: %w", err)
	}

	if cfg.Events == nil {
		cfg.Events = make(map[string]EventEntry)
	}

	for name, entry := range cfg.Events {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("event %q: %w", name, err)
		}
	}

	return &cfg, nil
}

// Save writes the event registry to the events file.
func (e *EventsConfig) Save(basePath string) error {
	if err := os.MkdirAll(filepath.Join(basePath, DefaultConfigDir), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling events config: %w", err)
	}

	if err := os.WriteFile(EventsFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing events file: %w", err)
	}

	return nil
}

// Add adds an event to the registry.
func (e *EventsConfig) Add(name string, entry EventEntry) {
	if e.Events == nil {
		e.Events = make(map[string]EventEntry)
	}
	e.Events[name] = entry
}

// Remove removes an event from the registry.
func (e *EventsConfig) Remove(name string) {
	if e.Events != nil {
		delete(e.Events, name)
	}
}

// Get returns the configuration for a specific event.
func (e *EventsConfig) Get(name string) (*EventEntry, error) {
	if len(e.Events) == 0 {
		return nil, errors.New("no events configured (run 'roster events create' first)")
	}

	entry, ok := e.Events[name]
	if !ok {
		names := e.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("event %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Names returns the registered event names in sorted order.
func (e *EventsConfig) Names() []string {
	names := make([]string, 0, len(e.Events))
	for name := range e.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if an event exists in the registry.
func (e *EventsConfig) Exists(name string) bool {
	if e.Events == nil {
		return false
	}
	_, ok := e.Events[name]
	return ok
}
