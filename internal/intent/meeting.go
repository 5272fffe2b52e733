package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultMeetingMinutes is used when the utterance names no duration.
const DefaultMeetingMinutes = 30

// MeetingSlots holds the structured fields of a scheduling request.
// End is always Start plus DurationMinutes.
type MeetingSlots struct {
	Title           string
	Start           time.Time
	End             time.Time
	Attendee        string
	DurationMinutes int
	Description     string
	ReadableTime    string
}

var (
	attendeeRe = regexp.MustCompile(`with\s+([a-zA-Z\s]+?)(?:\s+for|\s+at|\s+tomorrow|\s*$)`)
	minutesRe  = regexp.MustCompile(`(\d+)\s*minutes?`)
	hoursRe    = regexp.MustCompile(`(\d+)\s*hours?`)
	clockRe    = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)`)
)

// ExtractMeeting computes meeting slots from relative and absolute time
// phrases, anchored on now. The math is timezone-naive wall-clock time in
// now's location; attaching a timezone is the calendar writer's job.
func ExtractMeeting(utterance string, now time.Time) MeetingSlots {
	m := Normalize(utterance)

	title := "Meeting"
	switch {
	case strings.Contains(m, "meeting"):
		title = "Meeting"
	case strings.Contains(m, "appointment"):
		title = "Appointment"
	case strings.Contains(m, "call"):
		title = "Call"
	}

	attendee := ""
	if match := attendeeRe.FindStringSubmatch(m); match != nil {
		attendee = titleCase(strings.TrimSpace(match[1]))
		if attendee != "" {
			title = "Meeting with " + attendee
		}
	}

	duration := DefaultMeetingMinutes
	if match := minutesRe.FindStringSubmatch(m); match != nil {
		duration, _ = strconv.Atoi(match[1])
	} else if match := hoursRe.FindStringSubmatch(m); match != nil {
		hours, _ := strconv.Atoi(match[1])
		duration = hours * 60
	}
	if duration < 1 {
		duration = DefaultMeetingMinutes
	}

	base := now
	if strings.Contains(m, "tomorrow") {
		base = now.AddDate(0, 0, 1)
	}

	var start time.Time
	if match := clockRe.FindStringSubmatch(m); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute := 0
		if match[2] != "" {
			minute, _ = strconv.Atoi(match[2])
		}
		// 12pm stays 12, 12am becomes 0.
		if strings.HasPrefix(match[3], "p") && hour != 12 {
			hour += 12
		} else if strings.HasPrefix(match[3], "a") && hour == 12 {
			hour = 0
		}
		start = time.Date(base.Year(), base.Month(), base.Day(), hour%24, minute, 0, 0, base.Location())
	} else {
		// No explicit time: start of the next hour.
		start = time.Date(base.Year(), base.Month(), base.Day(), base.Hour(), 0, 0, 0, base.Location()).Add(time.Hour)
	}

	return MeetingSlots{
		Title:           title,
		Start:           start,
		End:             start.Add(time.Duration(duration) * time.Minute),
		Attendee:        attendee,
		DurationMinutes: duration,
		Description:     "Scheduled via voice command: " + utterance,
		ReadableTime:    readableTime(start, now),
	}
}

// readableTime renders the phrase used for voice confirmation: "today at
// 2:00 PM", "tomorrow at ..." or the weekday name for anything further out.
func readableTime(start, now time.Time) string {
	sy, sm, sd := start.Date()
	if ty, tm, td := now.AddDate(0, 0, 1).Date(); sy == ty && sm == tm && sd == td {
		return "tomorrow at " + start.Format("3:04 PM")
	}
	if ny, nm, nd := now.Date(); sy == ny && sm == nm && sd == nd {
		return "today at " + start.Format("3:04 PM")
	}
	return start.Format("Monday at 3:04 PM")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
