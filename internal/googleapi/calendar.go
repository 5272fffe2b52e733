package googleapi

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"june-voice-backend/internal/assistant"
)

// writeTimeZone is attached to event writes. The extractor produces
// timezone-naive wall-clock times; the calendar side pins them here.
const writeTimeZone = "America/Chicago"

// CreateEvent writes an event to the user's primary calendar and emails
// invites to any attendees.
func (s *Services) CreateEvent(ctx context.Context, req assistant.EventRequest) (assistant.EventResult, error) {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return assistant.EventResult{}, err
	}

	event := &calendar.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start:       &calendar.EventDateTime{DateTime: req.StartTime, TimeZone: writeTimeZone},
		End:         &calendar.EventDateTime{DateTime: req.EndTime, TimeZone: writeTimeZone},
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	for _, email := range req.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := svc.Events.Insert("primary", event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return assistant.EventResult{}, fmt.Errorf("insert event: %w", err)
	}
	return assistant.EventResult{EventID: created.Id, CalendarLink: created.HtmlLink}, nil
}

// EventSummary is one upcoming event for the read-side proxy route.
type EventSummary struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// UpcomingEvents lists events on the primary calendar within the next
// days days, earliest first.
func (s *Services) UpcomingEvents(ctx context.Context, days int) ([]EventSummary, error) {
	svc, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp, err := svc.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, days).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(20).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]EventSummary, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev := EventSummary{Title: item.Summary, Location: item.Location}
		if item.Start != nil {
			ev.Start = item.Start.DateTime
			if ev.Start == "" {
				ev.Start = item.Start.Date
			}
		}
		if item.End != nil {
			ev.End = item.End.DateTime
			if ev.End == "" {
				ev.End = item.End.Date
			}
		}
		out = append(out, ev)
	}
	return out, nil
}
