package assistant

import "context"

// Contact is one ranked contact-lookup result. Exact name matches are
// ordered before partial matches.
type Contact struct {
	DisplayName  string   `json:"display_name"`
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
	MatchType    string   `json:"match_type"` // exact | partial
}

// EventRequest is the calendar write contract. Times are ISO-8601 local
// wall-clock strings; the writer attaches the timezone.
type EventRequest struct {
	Title       string   `json:"title"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description"`
	Attendees   []string `json:"attendees"`
	Location    string   `json:"location,omitempty"`
}

// EventResult is returned by a successful calendar write.
type EventResult struct {
	EventID      string `json:"event_id"`
	CalendarLink string `json:"calendar_link"`
}

// EmailSummary is the slice of a message the voice flow reads aloud.
type EmailSummary struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
}

// StoreResult reports what a note/list write did.
type StoreResult struct {
	ID     string `json:"id"`
	Action string `json:"action"` // created | appended
}

// CalendarWriter creates events on the user's calendar.
type CalendarWriter interface {
	CreateEvent(ctx context.Context, req EventRequest) (EventResult, error)
}

// ContactDirectory resolves a spoken name to contacts, exact matches
// ranked before partial, case-insensitive.
type ContactDirectory interface {
	FindContact(ctx context.Context, name string) ([]Contact, error)
}

// MailReader lists recent messages for voice summaries.
type MailReader interface {
	RecentMessages(ctx context.Context, count int) ([]EmailSummary, error)
}

// NoteStore persists notes.
type NoteStore interface {
	CreateNote(ctx context.Context, title, content string) (StoreResult, error)
}

// ListStore persists shopping/todo lists, appending to an existing list
// of the same title when asked to.
type ListStore interface {
	SaveList(ctx context.Context, title string, items []string, appendToExisting bool) (StoreResult, error)
}

// Classifier is the optional generative-model path. Any error, including
// malformed model output, makes the assistant fall back to keyword rules.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (string, error)
}
