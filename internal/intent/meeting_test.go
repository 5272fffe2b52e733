package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday morning anchor for deterministic time math.
var meetingNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestExtractMeetingFull(t *testing.T) {
	slots := ExtractMeeting("schedule a meeting with John tomorrow at 2pm for 45 minutes", meetingNow)

	assert.Equal(t, "Meeting with John", slots.Title)
	assert.Equal(t, "John", slots.Attendee)
	assert.Equal(t, 45, slots.DurationMinutes)
	assert.Equal(t, time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC), slots.Start)
	assert.Equal(t, slots.Start.Add(45*time.Minute), slots.End)
	assert.Equal(t, "tomorrow at 2:00 PM", slots.ReadableTime)
	assert.Equal(t, "Scheduled via voice command: schedule a meeting with John tomorrow at 2pm for 45 minutes", slots.Description)
}

func TestExtractMeetingDefaults(t *testing.T) {
	// No explicit time: start of the next hour. No duration: 30 minutes.
	slots := ExtractMeeting("schedule a meeting", meetingNow)

	assert.Equal(t, "Meeting", slots.Title)
	assert.Empty(t, slots.Attendee)
	assert.Equal(t, DefaultMeetingMinutes, slots.DurationMinutes)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), slots.Start)
	assert.Equal(t, "today at 10:00 AM", slots.ReadableTime)
}

func TestExtractMeetingDuration(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      int
	}{
		{name: "minutes", utterance: "meeting for 15 minutes", want: 15},
		{name: "single minute", utterance: "meeting for 1 minute", want: 1},
		{name: "hours", utterance: "schedule a meeting with Sarah for 2 hours", want: 120},
		{name: "minutes beat hours", utterance: "meeting for 90 minutes not 2 hours", want: 90},
		{name: "none", utterance: "schedule a meeting", want: DefaultMeetingMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ExtractMeeting(tt.utterance, meetingNow)
			assert.Equal(t, tt.want, slots.DurationMinutes)
			assert.Equal(t, slots.Start.Add(time.Duration(tt.want)*time.Minute), slots.End)
		})
	}
}

func TestExtractMeetingClock(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		hour      int
		minute    int
	}{
		{name: "pm", utterance: "meeting at 2pm", hour: 14},
		{name: "am", utterance: "meeting at 9am", hour: 9},
		{name: "noon stays noon", utterance: "lunch meeting at 12pm", hour: 12},
		{name: "midnight wraps", utterance: "meeting at 12am", hour: 0},
		{name: "with minutes", utterance: "meeting at 2:45 pm", hour: 14, minute: 45},
		{name: "dotted meridiem", utterance: "appointment at 3 p.m.", hour: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ExtractMeeting(tt.utterance, meetingNow)
			assert.Equal(t, tt.hour, slots.Start.Hour())
			assert.Equal(t, tt.minute, slots.Start.Minute())
			assert.Equal(t, meetingNow.Day(), slots.Start.Day())
		})
	}
}

func TestExtractMeetingAttendee(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		attendee  string
		title     string
	}{
		{name: "terminated by at", utterance: "meeting with bob at 3pm", attendee: "Bob", title: "Meeting with Bob"},
		{name: "terminated by for", utterance: "meeting with alice for 20 minutes", attendee: "Alice", title: "Meeting with Alice"},
		{name: "terminated by tomorrow", utterance: "meeting with carol tomorrow", attendee: "Carol", title: "Meeting with Carol"},
		{name: "end of string", utterance: "schedule a meeting with dave", attendee: "Dave", title: "Meeting with Dave"},
		{name: "no attendee", utterance: "schedule an appointment tomorrow", attendee: "", title: "Appointment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ExtractMeeting(tt.utterance, meetingNow)
			assert.Equal(t, tt.attendee, slots.Attendee)
			assert.Equal(t, tt.title, slots.Title)
		})
	}
}

func TestReadableTimeWeekday(t *testing.T) {
	start := time.Date(2025, 3, 13, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Thursday at 3:00 PM", readableTime(start, meetingNow))
}
