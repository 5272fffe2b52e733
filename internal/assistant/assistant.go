package assistant

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"june-voice-backend/internal/intent"
)

// DefaultVoice is the assistant's voice tag returned in speak envelopes.
const DefaultVoice = "female_1"

// DefaultUpstreamTimeout bounds every collaborator call.
const DefaultUpstreamTimeout = 10 * time.Second

const capabilitySummary = "I'm here to help with calls, emails, calendar, messages, notes, and lists."

// ClarifyCallMessage is the clarifying question asked when a call request
// names no target. The transport layer uses it to mark a pending intent.
const ClarifyCallMessage = "Who would you like to call?"

// Assistant is the single shared implementation behind every transport
// entry point. All collaborators are optional; a missing or failing one
// degrades to a speak envelope, never an error.
type Assistant struct {
	Voice    string
	Timeout  time.Duration
	Calendar CalendarWriter
	Contacts ContactDirectory
	Mail     MailReader
	Notes    NoteStore
	Lists    ListStore
	Model    Classifier

	// Now is the clock used for time math; nil means time.Now.
	Now func() time.Time
}

// New returns an assistant with defaults applied.
func New(a Assistant) *Assistant {
	if a.Voice == "" {
		a.Voice = DefaultVoice
	}
	if a.Timeout <= 0 {
		a.Timeout = DefaultUpstreamTimeout
	}
	return &a
}

func (a *Assistant) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Assistant) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.Timeout)
}

// Respond runs the full pipeline for one utterance: classify, extract,
// drive the matching collaborator, build the envelope. It always returns a
// valid envelope; no code path raises across this boundary.
func (a *Assistant) Respond(ctx context.Context, utterance string) intent.Envelope {
	kind := a.classify(ctx, utterance)
	log.Printf("[assistant] intent=%s utterance=%q", kind, utterance)

	switch kind {
	case intent.KindCall:
		return a.respondCall(ctx, utterance)
	case intent.KindEmail:
		return a.respondEmail(ctx, utterance)
	case intent.KindCalendar:
		return a.respondCalendar(ctx, utterance)
	case intent.KindSMS:
		return intent.NewText("", "")
	case intent.KindNotes:
		return a.respondNote(ctx, utterance)
	case intent.KindList:
		return a.respondList(ctx, utterance)
	default:
		return intent.NewSpeak(capabilitySummary, a.Voice)
	}
}

// classify prefers the generative-model path when configured and falls
// back to the keyword rules on any error or invalid output.
func (a *Assistant) classify(ctx context.Context, utterance string) intent.Kind {
	if a.Model != nil {
		cctx, cancel := a.callCtx(ctx)
		defer cancel()
		kind, err := a.Model.Classify(cctx, utterance)
		if err == nil && intent.ValidKind(kind) {
			return intent.Kind(kind)
		}
		if err != nil {
			log.Printf("[assistant] model classification failed, using rules: %v", err)
		}
	}
	return intent.Classify(utterance)
}

func (a *Assistant) respondCall(ctx context.Context, utterance string) intent.Envelope {
	slots := intent.ExtractCall(utterance)
	if slots.Empty() {
		return intent.NewSpeak(ClarifyCallMessage, a.Voice)
	}
	if slots.PhoneNumber != "" {
		return intent.NewCall(slots)
	}

	// Resolve the spoken name to a stored number when a directory is
	// available; the client dials by name otherwise.
	if a.Contacts != nil {
		cctx, cancel := a.callCtx(ctx)
		defer cancel()
		contacts, err := a.Contacts.FindContact(cctx, slots.ContactName)
		if err != nil {
			log.Printf("[assistant] contact lookup failed for %q: %v", slots.ContactName, err)
		} else if len(contacts) > 0 && len(contacts[0].PhoneNumbers) > 0 {
			slots.PhoneNumber = contacts[0].PhoneNumbers[0]
			slots.ContactName = contacts[0].DisplayName
		}
	}
	return intent.NewCall(slots)
}

func (a *Assistant) respondEmail(ctx context.Context, utterance string) intent.Envelope {
	m := intent.Normalize(utterance)

	if containsAny(m, []string{"summarize", "summary", "check email", "read email"}) {
		if a.Mail == nil {
			return intent.NewSpeak("Cannot connect to Gmail service right now.", a.Voice)
		}
		cctx, cancel := a.callCtx(ctx)
		defer cancel()
		emails, err := a.Mail.RecentMessages(cctx, 10)
		if err != nil {
			log.Printf("[assistant] gmail summary failed: %v", err)
			return intent.NewSpeak("Cannot connect to Gmail service right now.", a.Voice)
		}
		if len(emails) == 0 {
			return intent.NewSpeak("No recent emails found.", a.Voice)
		}
		plural := "emails"
		if len(emails) == 1 {
			plural = "email"
		}
		latest := emails[0]
		msg := "You have " + strconv.Itoa(len(emails)) + " recent " + plural +
			". The latest is from " + orUnknown(latest.Sender) +
			" with subject '" + orNoSubject(latest.Subject) + "'"
		return intent.NewSpeak(msg, a.Voice)
	}

	if containsAny(m, []string{"send email", "email", "compose", "write to"}) {
		return intent.NewEmail("", "", "")
	}
	return intent.NewOpenApp("gmail", "Opening Gmail")
}

func (a *Assistant) respondCalendar(ctx context.Context, utterance string) intent.Envelope {
	m := intent.Normalize(utterance)
	if !containsAny(m, []string{"schedule", "meeting", "appointment", "book", "create"}) {
		return intent.NewCalendar(intent.CalendarOpen, "Opening calendar", "", nil)
	}

	slots := intent.ExtractMeeting(utterance, a.now())
	req := EventRequest{
		Title:       slots.Title,
		StartTime:   slots.Start.Format("2006-01-02T15:04:05"),
		EndTime:     slots.End.Format("2006-01-02T15:04:05"),
		Description: slots.Description,
	}
	if slots.Attendee != "" {
		req.Location = "Meeting with " + slots.Attendee
		if a.Contacts != nil {
			cctx, cancel := a.callCtx(ctx)
			contacts, err := a.Contacts.FindContact(cctx, slots.Attendee)
			cancel()
			if err == nil && len(contacts) > 0 && len(contacts[0].Emails) > 0 {
				req.Attendees = []string{contacts[0].Emails[0]}
			}
		}
	}

	if a.Calendar == nil {
		return a.calendarFailed()
	}
	cctx, cancel := a.callCtx(ctx)
	defer cancel()
	result, err := a.Calendar.CreateEvent(cctx, req)
	if err != nil {
		log.Printf("[assistant] calendar create failed: %v", err)
		return a.calendarFailed()
	}

	speak := "I've scheduled your meeting for " + slots.ReadableTime + "."
	if slots.Attendee != "" {
		speak = "I've scheduled your meeting with " + slots.Attendee + " for " + slots.ReadableTime + "."
	}
	return intent.NewCalendar(
		intent.CalendarCreateSuccess,
		"Meeting scheduled: "+slots.Title+" at "+req.StartTime,
		speak,
		map[string]any{
			"event_id":      result.EventID,
			"calendar_link": result.CalendarLink,
			"title":         slots.Title,
			"start_time":    req.StartTime,
			"end_time":      req.EndTime,
		},
	)
}

func (a *Assistant) calendarFailed() intent.Envelope {
	return intent.NewCalendar(
		intent.CalendarCreateFailed,
		"Failed to create calendar event",
		"Sorry, I couldn't create the calendar event. Please try again.",
		nil,
	)
}

func (a *Assistant) respondNote(ctx context.Context, utterance string) intent.Envelope {
	slots := intent.ExtractNote(utterance, a.now())
	isResume := strings.Contains(intent.Normalize(utterance), "resume")

	if a.Notes == nil {
		return intent.NewNotes("", "Error creating note", "Sorry, I had trouble creating your note.")
	}
	cctx, cancel := a.callCtx(ctx)
	defer cancel()
	result, err := a.Notes.CreateNote(cctx, slots.Title, slots.Content)
	if err != nil {
		log.Printf("[assistant] note create failed: %v", err)
		return intent.NewNotes("", "Error creating note", "Sorry, I had trouble creating your note.")
	}

	if isResume {
		return intent.NewNotes(result.ID,
			"Created resume draft: "+truncate(slots.Content, 50),
			"I've created a resume draft template for you in your notes. You can fill in your specific details.")
	}
	return intent.NewNotes(result.ID,
		"Created note: "+truncate(slots.Content, 50),
		"I've created a note: "+slots.Content)
}

func (a *Assistant) respondList(ctx context.Context, utterance string) intent.Envelope {
	slots := intent.ExtractList(utterance)

	listName := "Shopping List"
	if slots.ListType == intent.ListTodo {
		listName = "Todo List"
	}
	title := listName + " - " + a.now().Format("2006-01-02")

	if a.Lists == nil {
		return intent.NewList("", nil, "Error creating list", "Sorry, I had trouble creating your list.")
	}
	cctx, cancel := a.callCtx(ctx)
	defer cancel()
	result, err := a.Lists.SaveList(cctx, title, slots.Items, true)
	if err != nil {
		log.Printf("[assistant] list save failed: %v", err)
		return intent.NewList("", nil, "Error creating list", "Sorry, I had trouble creating your list.")
	}

	itemsText := strings.Join(slots.Items, ", ")
	return intent.NewList(result.ID, slots.Items,
		"Added to "+strings.ToLower(listName)+": "+itemsText,
		"I've added "+itemsText+" to your "+strings.ToLower(listName))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func orNoSubject(s string) string {
	if strings.TrimSpace(s) == "" {
		return "no subject"
	}
	return s
}
