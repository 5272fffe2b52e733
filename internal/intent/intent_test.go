package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      Kind
	}{
		{name: "call by name", utterance: "call mom", want: KindCall},
		{name: "dial a number", utterance: "dial 200", want: KindCall},
		{name: "phone keyword", utterance: "phone the office", want: KindCall},
		{name: "email beats calendar", utterance: "email me about the meeting", want: KindEmail},
		{name: "compose", utterance: "compose a message to Bob", want: KindEmail},
		{name: "schedule", utterance: "schedule a meeting with John tomorrow at 2pm", want: KindCalendar},
		{name: "appointment", utterance: "book an appointment for Friday", want: KindCalendar},
		{name: "sms", utterance: "text Sarah I'm running late", want: KindSMS},
		{name: "note", utterance: "take a note about the garage code", want: KindNotes},
		{name: "write down", utterance: "write down remember to pick up dry cleaning", want: KindNotes},
		{name: "resume draft", utterance: "draft a resume for me", want: KindNotes},
		{name: "shopping list", utterance: "Add egg, milk and bread to the shopping list.", want: KindList},
		{name: "todo", utterance: "put laundry on my todo list", want: KindList},
		{name: "general question", utterance: "what's the weather", want: KindGeneral},
		{name: "empty", utterance: "", want: KindGeneral},
		{name: "whitespace only", utterance: "   \t  ", want: KindGeneral},
		{name: "uppercase input", utterance: "CALL MOM", want: KindCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance))
		})
	}
}

// Single-word keywords match whole tokens only; "recall" must not hit the
// call rule and "listen" must not hit the list rule.
func TestClassifyWholeWordPolicy(t *testing.T) {
	assert.Equal(t, KindGeneral, Classify("recall what I said yesterday"))
	assert.Equal(t, KindGeneral, Classify("listen to some jazz"))
	assert.Equal(t, KindCall, Classify("please call, now"))
}

func TestClassifyRuleOrder(t *testing.T) {
	// call outranks everything
	assert.Equal(t, KindCall, Classify("call me about the email and the meeting"))
	// calendar outranks sms
	assert.Equal(t, KindCalendar, Classify("schedule a text reminder"))
}

func TestValidKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, ValidKind(string(k)))
	}
	assert.False(t, ValidKind("weather"))
	assert.False(t, ValidKind(""))
	assert.False(t, ValidKind("Call"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "call mom", Normalize("  Call Mom  "))
	assert.Equal(t, "", Normalize("   "))
}
