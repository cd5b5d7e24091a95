package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEventsMissingFile(t *testing.T) {
	events, err := LoadEvents(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, events.Events)
	assert.Empty(t, events.Names())
}

func TestEventsSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	events := &EventsConfig{}
	events.Add("spring_gala", EventEntry{
		ID:          "ev-100",
		Description: "Spring gala dinner",
		Shifts: map[string]string{
			"16:00-06:00": "sh-night",
			"8:00-16:00":  "sh-day",
		},
	})
	events.Add("conference", EventEntry{ID: "ev-200"})
	require.NoError(t, events.Save(dir))

	info, err := os.Stat(EventsFilePath(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadEvents(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"conference", "spring_gala"}, loaded.Names())

	gala, err := loaded.Get("spring_gala")
	require.NoError(t, err)
	assert.Equal(t, "ev-100", gala.ID)
	assert.Equal(t, map[string]string{
		"16:00-06:00": "sh-night",
		"08:00-16:00": "sh-day",
	}, gala.ShiftCatalog())
}

func TestEventsGet(t *testing.T) {
	empty := &EventsConfig{}
	_, err := empty.Get("gala")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no events configured")

	events := &EventsConfig{}
	events.Add("gala", EventEntry{ID: "ev-1"})
	events.Add("launch", EventEntry{ID: "ev-2"})

	_, err = events.Get("wedding")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `event "wedding" not found (available: gala, launch)`)
}

func TestEventsAddRemoveExists(t *testing.T) {
	events := &EventsConfig{}
	assert.False(t, events.Exists("gala"))
	events.Remove("gala")

	events.Add("gala", EventEntry{ID: "ev-1"})
	assert.True(t, events.Exists("gala"))

	events.Remove("gala")
	assert.False(t, events.Exists("gala"))
}

func TestEventEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   EventEntry
		wantErr string
	}{
		{name: "valid", entry: EventEntry{ID: "ev-1", Shifts: map[string]string{"16:00-06:00": "night"}}},
		{name: "missing id", entry: EventEntry{}, wantErr: "event id is required"},
		{name: "open shift", entry: EventEntry{ID: "ev-1", Shifts: map[string]string{"16:00": "x"}}, wantErr: "start and an end"},
		{name: "bad time", entry: EventEntry{ID: "ev-1", Shifts: map[string]string{"25:00-06:00": "x"}}, wantErr: "out of range"},
		{name: "empty shift id", entry: EventEntry{ID: "ev-1", Shifts: map[string]string{"16:00-18:00": ""}}, wantErr: "has no id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEventsRejectsInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	content := "events:\n  gala:\n    id: ev-1\n    shifts:\n      \"nonsense\": sh-1\n"
	require.NoError(t, os.WriteFile(EventsFilePath(dir), []byte(content), 0644))

	_, err := LoadEvents(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `event "gala"`)
}
