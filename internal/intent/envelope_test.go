package intent

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeBuilders(t *testing.T) {
	t.Run("speak", func(t *testing.T) {
		env := NewSpeak("hello", "female_1")
		assert.Equal(t, "speak", env.Action)
		assert.Equal(t, "hello", env.Message)
		assert.Equal(t, "female_1", env.Voice)
	})

	t.Run("call prefers contact name in message", func(t *testing.T) {
		env := NewCall(CallSlots{PhoneNumber: "5551234", ContactName: "Mom"})
		assert.Equal(t, "call", env.Action)
		assert.Equal(t, "Calling Mom", env.Message)
		assert.Equal(t, "5551234", env.PhoneNumber)

		env = NewCall(CallSlots{PhoneNumber: "200"})
		assert.Equal(t, "Calling 200", env.Message)
	})

	t.Run("email", func(t *testing.T) {
		env := NewEmail("bob@example.com", "Lunch", "")
		assert.Equal(t, "email", env.Action)
		assert.Equal(t, "Opening email to bob@example.com", env.Message)

		env = NewEmail("bob@example.com", "", "Bob")
		assert.Equal(t, "Opening email to Bob", env.Message)
	})

	t.Run("calendar", func(t *testing.T) {
		env := NewCalendar(CalendarCreateSuccess, "Meeting scheduled", "done", map[string]any{"event_id": "e1"})
		assert.Equal(t, "calendar", env.Action)
		assert.Equal(t, CalendarCreateSuccess, env.CalendarAction)
		assert.Equal(t, "e1", env.EventData["event_id"])
	})

	t.Run("notes and list", func(t *testing.T) {
		env := NewNotes("n1", "Created note", "ok")
		assert.Equal(t, "notes", env.Action)
		assert.Equal(t, "n1", env.NoteID)

		env = NewList("l1", []string{"egg", "milk"}, "Added", "ok")
		assert.Equal(t, "list", env.Action)
		assert.Equal(t, []string{"egg", "milk"}, env.Items)
	})
}

// The action discriminant is always present on the wire, and fields of
// other variants stay absent.
func TestEnvelopeJSONShape(t *testing.T) {
	b, err := json.Marshal(NewSpeak("hi", "female_1"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "speak", m["action"])
	assert.Equal(t, "hi", m["message"])
	assert.NotContains(t, m, "phone_number")
	assert.NotContains(t, m, "event_data")
	assert.NotContains(t, m, "items")
}

// Extraction never panics, whatever the transcription hands us.
func TestExtractorsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", ".", ":::", "call", "dial", "add to list",
		"note", "write down", "schedule", "meeting at 99pm",
		"ñandú llamada", "日本語でメモして", "🎉🎉🎉", "İstanbul call",
		"buy éclairs and crème",
	}
	now := time.Now()
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			Classify(in)
			ExtractCall(in)
			ExtractMeeting(in, now)
			ExtractList(in)
			ExtractNote(in, now)
		}, "input %q", in)
	}
}
