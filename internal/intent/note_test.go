package intent

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var noteNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestExtractNoteStripping(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		content   string
	}{
		// Stacked trigger phrasing: the leading trigger anchors the slice,
		// the second trigger word is consumed, the "to" stays.
		{name: "stacked triggers", utterance: "write down remember to pick up dry cleaning", content: "to pick up dry cleaning"},
		{name: "simple note", utterance: "note that the wifi password changed", content: "wifi password changed"},
		{name: "reminder", utterance: "reminder: water the plants", content: "water the plants"},
		{name: "jot down", utterance: "jot down the gate code is 4821", content: "gate code is 4821"},
		{name: "no trigger", utterance: "the sky is blue", content: "the sky is blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ExtractNote(tt.utterance, noteNow)
			assert.Equal(t, tt.content, slots.Content)
			assert.Equal(t, "Voice Note - 2025-03-10 09:30", slots.Title)
		})
	}
}

func TestExtractNotePreservesCase(t *testing.T) {
	slots := ExtractNote("note that Dr. Alvarez moved to Suite 410", noteNow)
	assert.Equal(t, "Dr. Alvarez moved to Suite 410", slots.Content)
}

func TestExtractNoteResumeTemplate(t *testing.T) {
	slots := ExtractNote("draft a resume for me", noteNow)
	assert.Equal(t, "Resume Draft - 2025-03-10 09:30", slots.Title)
	assert.Equal(t, resumeTemplate, slots.Content)
	assert.True(t, strings.HasPrefix(slots.Content, "RESUME DRAFT"))
	assert.Contains(t, slots.Content, "OBJECTIVE")
	assert.Contains(t, slots.Content, "EXPERIENCE")
	assert.Contains(t, slots.Content, "EDUCATION")
	assert.Contains(t, slots.Content, "SKILLS")
}

// A draft request that never mentions "resume" goes through normal
// extraction, not the canned branch.
func TestExtractNoteDraftWithoutResume(t *testing.T) {
	slots := ExtractNote("draft a cover letter for the Acme job", noteNow)
	assert.NotEqual(t, resumeTemplate, slots.Content)
	assert.Equal(t, "Voice Note - 2025-03-10 09:30", slots.Title)
	assert.Equal(t, "cover letter for the Acme job", slots.Content)
}

func TestStripLeading(t *testing.T) {
	assert.Equal(t, "milk", stripLeading("the milk", []string{"the"}))
	assert.Equal(t, "milk", stripLeading("a the milk", []string{"a", "the"}))
	// Only whole leading words strip.
	assert.Equal(t, "theory of mind", stripLeading("theory of mind", []string{"the"}))
	assert.Equal(t, "", stripLeading("", []string{"the"}))
}
