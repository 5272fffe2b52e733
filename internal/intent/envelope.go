package intent

// CalendarAction discriminates the calendar envelope variants.
type CalendarAction string

const (
	CalendarOpen          CalendarAction = "open"
	CalendarCreate        CalendarAction = "create"
	CalendarCreateSuccess CalendarAction = "create_success"
	CalendarCreateFailed  CalendarAction = "create_failed"
)

// Envelope is the action object returned to the client app. Action is the
// discriminant and is always present; which of the remaining fields are
// populated depends on it. Exactly one envelope is produced per request.
type Envelope struct {
	Action  string `json:"action"`
	Message string `json:"message"`

	// speak
	Voice string `json:"voice,omitempty"`

	// call
	PhoneNumber string `json:"phone_number,omitempty"`
	ContactName string `json:"contact_name,omitempty"`

	// email
	EmailAddress string `json:"email_address,omitempty"`
	Subject      string `json:"subject,omitempty"`

	// open_app
	AppName string `json:"app_name,omitempty"`

	// calendar
	CalendarAction CalendarAction `json:"calendar_action,omitempty"`
	EventData      map[string]any `json:"event_data,omitempty"`

	// text
	Recipient   string `json:"recipient,omitempty"`
	TextContent string `json:"text_content,omitempty"`

	// notes / list
	NoteID string   `json:"note_id,omitempty"`
	ListID string   `json:"list_id,omitempty"`
	Items  []string `json:"items,omitempty"`

	// Speak carries a phrase to say aloud when Message is for display only.
	Speak string `json:"speak,omitempty"`

	// Transcript echoes what speech-to-text heard on voice requests.
	Transcript string `json:"transcript,omitempty"`
}

// NewSpeak builds the envelope used for clarification, summaries and
// fallback replies.
func NewSpeak(message, voice string) Envelope {
	return Envelope{Action: "speak", Message: message, Voice: voice}
}

// NewApology is the terminal fallback when an internal failure would
// otherwise cross the transport boundary.
func NewApology(voice string) Envelope {
	return NewSpeak("Sorry, there was an error processing your request.", voice)
}

// NewCall builds a call envelope from resolved slots.
func NewCall(slots CallSlots) Envelope {
	message := "Calling " + slots.PhoneNumber
	if slots.ContactName != "" {
		message = "Calling " + slots.ContactName
	}
	return Envelope{
		Action:      "call",
		Message:     message,
		PhoneNumber: slots.PhoneNumber,
		ContactName: slots.ContactName,
	}
}

// NewEmail builds a compose-email envelope.
func NewEmail(address, subject, contactName string) Envelope {
	target := contactName
	if target == "" {
		target = address
	}
	return Envelope{
		Action:       "email",
		Message:      "Opening email to " + target,
		EmailAddress: address,
		Subject:      subject,
		ContactName:  contactName,
	}
}

// NewOpenApp asks the client to open a named application.
func NewOpenApp(app, message string) Envelope {
	return Envelope{Action: "open_app", Message: message, AppName: app}
}

// NewCalendar builds a calendar envelope for the given sub-action.
func NewCalendar(action CalendarAction, message, speak string, eventData map[string]any) Envelope {
	return Envelope{
		Action:         "calendar",
		Message:        message,
		CalendarAction: action,
		EventData:      eventData,
		Speak:          speak,
	}
}

// NewText builds an SMS envelope.
func NewText(recipient, content string) Envelope {
	return Envelope{
		Action:      "text",
		Message:     "Opening messages",
		Recipient:   recipient,
		TextContent: content,
	}
}

// NewNotes builds a note-created envelope.
func NewNotes(noteID, message, speak string) Envelope {
	return Envelope{Action: "notes", Message: message, NoteID: noteID, Speak: speak}
}

// NewList builds a list-updated envelope.
func NewList(listID string, items []string, message, speak string) Envelope {
	return Envelope{Action: "list", Message: message, ListID: listID, Items: items, Speak: speak}
}
