package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCall(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      CallSlots
	}{
		{name: "short number", utterance: "dial 200", want: CallSlots{PhoneNumber: "200"}},
		{name: "contact name", utterance: "call mom", want: CallSlots{ContactName: "mom"}},
		{name: "multi word name", utterance: "call John Smith", want: CallSlots{ContactName: "john smith"}},
		{name: "formatted number", utterance: "call (555) 123-4567 now", want: CallSlots{PhoneNumber: "(555)"}},
		{name: "plain number", utterance: "call 5551234567", want: CallSlots{PhoneNumber: "5551234567"}},
		{name: "international", utterance: "dial +14155550100", want: CallSlots{PhoneNumber: "+14155550100"}},
		{name: "no target", utterance: "call", want: CallSlots{}},
		{name: "no verb no digits", utterance: "ring the doctor", want: CallSlots{}},
		{name: "digits win over name", utterance: "call mom at 5551234", want: CallSlots{PhoneNumber: "5551234"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCall(tt.utterance))
		})
	}
}

func TestCallSlotsEmpty(t *testing.T) {
	assert.True(t, CallSlots{}.Empty())
	assert.False(t, CallSlots{PhoneNumber: "200"}.Empty())
	assert.False(t, CallSlots{ContactName: "mom"}.Empty())
}
