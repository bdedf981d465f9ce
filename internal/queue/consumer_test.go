package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	ev := ActivityEvent{ID: "e1", Action: ActionUpdated, Entity: EntityVenue, EntityID: 3, Name: `The "Hop"`, OccurredAt: "2026-10-16T12:00:00Z"}
	assert.Equal(t, "[2026-10-16T12:00:00Z] venue updated | id=3 | name=\"The \\\"Hop\\\"\" | event_id=e1\n", FormatLine(ev))
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.log")
	for _, ev := range []ActivityEvent{
		NewActivityEvent(ActionCreated, EntityArtist, 1, "Guns N Petals"),
		NewActivityEvent(ActionDeleted, EntityArtist, 1, "Guns N Petals"),
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, HandleMessage(path, body))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "artist created | id=1")
	assert.Contains(t, lines[1], "artist deleted | id=1")
}

func TestHandleMessage_RejectsBadPayloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	assert.Error(t, HandleMessage(path, []byte("{")))
	assert.Error(t, HandleMessage(path, []byte(`{"entity":"venue"}`)))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewActivityEvent(t *testing.T) {
	a := NewActivityEvent(ActionCreated, EntityShow, 9, "")
	b := NewActivityEvent(ActionCreated, EntityShow, 9, "")
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEmpty(t, a.OccurredAt)
}
